package testutil

import (
	"context"
	"sync"

	"github.com/showfinder/showfinder/internal/models"
)

// SearchResponse is what FakeClient returns for one SearchShows call.
type SearchResponse struct {
	Shows []models.Show
	Err   error
	// Release, when set, blocks the call until it is closed.
	Release chan struct{}
}

// EpisodesResponse is what FakeClient returns for one GetEpisodes call.
type EpisodesResponse struct {
	Episodes []models.Episode
	Err      error
	Release  chan struct{}
}

// FakeClient is an in-memory client.Client. Responses are keyed by query and
// show id; unknown keys return empty lists. Calls are recorded in order.
type FakeClient struct {
	mu       sync.Mutex
	Search   map[string]SearchResponse
	Episodes map[models.ShowID]EpisodesResponse

	searchCalls   []string
	episodesCalls []models.ShowID
	closed        bool

	// Started receives the argument of every call as soon as it begins.
	Started chan string
}

// NewFakeClient creates an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Search:   make(map[string]SearchResponse),
		Episodes: make(map[models.ShowID]EpisodesResponse),
		Started:  make(chan string, 64),
	}
}

func (f *FakeClient) SearchShows(ctx context.Context, query string) ([]models.Show, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	resp := f.Search[query]
	f.mu.Unlock()

	f.started(query)
	if resp.Release != nil {
		select {
		case <-resp.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.Shows, resp.Err
}

func (f *FakeClient) GetEpisodes(ctx context.Context, showID models.ShowID) ([]models.Episode, error) {
	f.mu.Lock()
	f.episodesCalls = append(f.episodesCalls, showID)
	resp := f.Episodes[showID]
	f.mu.Unlock()

	f.started(string(showID))
	if resp.Release != nil {
		select {
		case <-resp.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.Episodes, resp.Err
}

func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (f *FakeClient) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// SearchQueries returns a copy of the queries passed to SearchShows.
func (f *FakeClient) SearchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

// EpisodeRequests returns a copy of the show ids passed to GetEpisodes.
func (f *FakeClient) EpisodeRequests() []models.ShowID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ShowID(nil), f.episodesCalls...)
}

// Calls returns the number of SearchShows and GetEpisodes calls so far.
func (f *FakeClient) Calls() (search, episodes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls), len(f.episodesCalls)
}

func (f *FakeClient) started(arg string) {
	select {
	case f.Started <- arg:
	default:
	}
}
