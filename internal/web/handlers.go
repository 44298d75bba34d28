package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/render"
	"github.com/showfinder/showfinder/internal/widget"
)

// detach keeps a submission running when the visitor navigates away, so its
// result still lands in the session's panel. The client's own timeout bounds it.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	wg := s.sessions.Get(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.Page(w, render.PageData{
		Query:    wg.Query(),
		Shows:    wg.Shows(),
		Episodes: wg.EpisodeList(),
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleSearch runs the search controller and redirects back to the page.
// Failures are already on the shows panel, so the redirect happens regardless.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	wg := s.sessions.Get(w, r)
	_ = wg.Search(detach(r), r.PostFormValue("q"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEpisodes runs the episodes controller for the card whose form was
// submitted.
func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	wg := s.sessions.Get(w, r)
	err := wg.Episodes(detach(r), models.ShowID(r.PostFormValue("show-id")))
	if errors.Is(err, widget.ErrMissingShowID) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/#episodes-area", http.StatusSeeOther)
}

func (s *Server) handleShowsPanel(w http.ResponseWriter, r *http.Request) {
	wg := s.sessions.Get(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.ShowsPanel(w, wg.Shows()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render shows panel")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleEpisodesPanel(w http.ResponseWriter, r *http.Request) {
	wg := s.sessions.Get(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.EpisodesPanel(w, wg.EpisodeList()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render episodes panel")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
