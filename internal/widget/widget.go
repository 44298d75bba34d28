// Package widget implements the search and episode controllers of one
// visitor's show finder: it turns user actions into TVMaze requests and
// applies the results to the two display panels.
package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/metrics"
	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/panel"
	"github.com/showfinder/showfinder/internal/parser"
)

// ErrMissingShowID is returned by Episodes when no show id was supplied.
var ErrMissingShowID = errors.New("missing show id")

const (
	panelShows    = "shows"
	panelEpisodes = "episodes"
)

// Widget holds the shows panel and the episodes panel of one visitor. It is
// safe for concurrent use; no lock is held while a request is in flight.
type Widget struct {
	client   client.Client
	shows    *panel.Panel[models.Show]
	episodes *panel.Panel[models.Episode]

	mu    sync.Mutex
	query string
}

// New creates a widget backed by c. The episodes panel starts hidden.
func New(c client.Client) *Widget {
	return &Widget{
		client:   c,
		shows:    panel.New[models.Show](true),
		episodes: panel.New[models.Episode](false),
	}
}

// Search runs one search submission. A query that is empty after trimming is
// ignored: no request is made, the panel is untouched and nil is returned.
// Otherwise the shows panel is replaced with the results, or keeps its
// content and records a message when the request fails. The failure is also
// returned.
func (w *Widget) Search(ctx context.Context, rawQuery string) error {
	logger := config.GetLogger()

	query := parser.NormalizeQuery(rawQuery)
	if query == "" {
		metrics.PanelUpdatesTotal.WithLabelValues(panelShows, "skipped").Inc()
		logger.Debug().Msg("Ignoring empty search query")
		return nil
	}

	w.mu.Lock()
	w.query = query
	w.mu.Unlock()

	ticket := w.shows.Begin()
	shows, err := w.client.SearchShows(ctx, query)
	if err != nil {
		w.fail(ctx, panelShows, w.shows.Fail(ticket, err), err)
		return err
	}

	if !w.shows.Replace(ticket, shows) {
		metrics.PanelUpdatesTotal.WithLabelValues(panelShows, "stale").Inc()
		logger.Debug().Str("query", query).Uint64("ticket", uint64(ticket)).Msg("Discarding stale search results")
		return nil
	}
	metrics.PanelUpdatesTotal.WithLabelValues(panelShows, "applied").Inc()
	logger.Debug().Str("query", query).Int("count", len(shows)).Msg("Shows panel updated")
	return nil
}

// Episodes loads the episode list of showID into the episodes panel and
// reveals it. Failures follow the same policy as Search.
func (w *Widget) Episodes(ctx context.Context, showID models.ShowID) error {
	logger := config.GetLogger()

	if showID == "" {
		return ErrMissingShowID
	}

	ticket := w.episodes.Begin()
	episodes, err := w.client.GetEpisodes(ctx, showID)
	if err != nil {
		w.fail(ctx, panelEpisodes, w.episodes.Fail(ticket, err), err)
		return err
	}

	if !w.episodes.Replace(ticket, episodes) {
		metrics.PanelUpdatesTotal.WithLabelValues(panelEpisodes, "stale").Inc()
		logger.Debug().Str("show_id", showID.String()).Uint64("ticket", uint64(ticket)).Msg("Discarding stale episode list")
		return nil
	}
	w.episodes.Show()
	metrics.PanelUpdatesTotal.WithLabelValues(panelEpisodes, "applied").Inc()
	logger.Debug().Str("show_id", showID.String()).Int("count", len(episodes)).Msg("Episodes panel updated")
	return nil
}

// Query returns the last non-empty query submitted.
func (w *Widget) Query() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

// Shows returns a snapshot of the shows panel.
func (w *Widget) Shows() panel.View[models.Show] {
	return w.shows.Snapshot()
}

// EpisodeList returns a snapshot of the episodes panel.
func (w *Widget) EpisodeList() panel.View[models.Episode] {
	return w.episodes.Snapshot()
}

func (w *Widget) fail(ctx context.Context, name string, applied bool, err error) {
	logger := config.GetLogger()

	outcome := "failed"
	if !applied {
		outcome = "stale"
	}
	metrics.PanelUpdatesTotal.WithLabelValues(name, outcome).Inc()
	logger.Error().Err(err).Str("panel", name).Bool("applied", applied).Msg("Panel update failed")

	// Cancelled requests are the visitor going away, not a fault.
	if errors.Is(err, context.Canceled) {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("panel", name)
		hub.CaptureException(err)
	})
}
