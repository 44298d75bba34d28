package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/showfinder/showfinder/internal/apperrors"
	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/parser"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondFailure maps a client failure to a status: 404 when TVMaze has no
// such resource, 502 otherwise.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("TVMaze request failed")

	if errors.Is(err, &apperrors.ErrNotFound{}) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
	respondError(w, http.StatusBadGateway, err.Error())
}

func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	query := parser.NormalizeQuery(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	shows, err := s.client.SearchShows(r.Context(), query)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if shows == nil {
		shows = []models.Show{}
	}
	respondJSON(w, http.StatusOK, shows)
}

func (s *Server) apiEpisodes(w http.ResponseWriter, r *http.Request) {
	showID := models.ShowID(mux.Vars(r)["id"])

	episodes, err := s.client.GetEpisodes(r.Context(), showID)
	if err != nil {
		respondFailure(w, r, err)
		return
	}
	if episodes == nil {
		episodes = []models.Episode{}
	}
	respondJSON(w, http.StatusOK, episodes)
}
