package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/showfinder/showfinder/internal/apperrors"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
)

const (
	opSearchShows = "search shows"
	opGetEpisodes = "get episodes"
)

// SearchParser maps a /search/shows response to shows.
type SearchParser struct{}

// NewSearchParser creates a new search result parser
func NewSearchParser() *SearchParser {
	return &SearchParser{}
}

// Parse decodes the search results, substituting the placeholder summary and
// image where TVMaze has none. Order is preserved and nothing is dropped.
func (p *SearchParser) Parse(body io.Reader) ([]models.Show, error) {
	return ParseSearchResults(body)
}

// EpisodeParser maps a /shows/{id}/episodes response to episodes.
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode list parser
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// Parse decodes the episode list. Every field is required.
func (p *EpisodeParser) Parse(body io.Reader) ([]models.Episode, error) {
	return ParseEpisodes(body)
}

// ParseSearchResults decodes a JSON array of {show: {...}} search results.
func ParseSearchResults(body io.Reader) ([]models.Show, error) {
	logger := config.GetLogger()

	var raw []models.SearchResult
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, apperrors.NewRequestFailure(opSearchShows, "", apperrors.ReasonDecode, fmt.Errorf("decode search results: %w", err))
	}

	shows := make([]models.Show, 0, len(raw))
	for i, result := range raw {
		show, err := mapShow(i, result.Show)
		if err != nil {
			logger.Debug().Err(err).Int("index", i).Msg("Search result does not match expected shape")
			return nil, err
		}
		shows = append(shows, show)
	}

	logger.Debug().Int("count", len(shows)).Msg("Parsed search results")
	return shows, nil
}

func mapShow(i int, raw *models.RawShow) (models.Show, error) {
	switch {
	case raw == nil:
		return models.Show{}, apperrors.NewShapeFailure(opSearchShows, i, "show")
	case raw.ID == "":
		return models.Show{}, apperrors.NewShapeFailure(opSearchShows, i, "show.id")
	case raw.Name == nil:
		return models.Show{}, apperrors.NewShapeFailure(opSearchShows, i, "show.name")
	}

	show := models.Show{
		ID:      raw.ID,
		Name:    *raw.Name,
		Summary: models.PlaceholderSummary,
		Image:   models.PlaceholderImage,
	}
	if raw.Summary != nil && *raw.Summary != "" {
		show.Summary = *raw.Summary
	}
	if raw.Image != nil && raw.Image.Medium != "" {
		show.Image = raw.Image.Medium
	}
	return show, nil
}

// ParseEpisodes decodes a JSON array of {id, name, season, number} episodes.
func ParseEpisodes(body io.Reader) ([]models.Episode, error) {
	logger := config.GetLogger()

	var raw []models.RawEpisode
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, apperrors.NewRequestFailure(opGetEpisodes, "", apperrors.ReasonDecode, fmt.Errorf("decode episodes: %w", err))
	}

	episodes := make([]models.Episode, 0, len(raw))
	for i, ep := range raw {
		var missing string
		switch {
		case ep.ID == "":
			missing = "id"
		case ep.Name == nil:
			missing = "name"
		case ep.Season == nil:
			missing = "season"
		case ep.Number == nil:
			missing = "number"
		}
		if missing != "" {
			logger.Debug().Int("index", i).Str("field", missing).Msg("Episode does not match expected shape")
			return nil, apperrors.NewShapeFailure(opGetEpisodes, i, missing)
		}

		episodes = append(episodes, models.Episode{
			ID:     ep.ID,
			Name:   *ep.Name,
			Season: *ep.Season,
			Number: *ep.Number,
		})
	}

	logger.Debug().Int("count", len(episodes)).Msg("Parsed episodes")
	return episodes, nil
}
