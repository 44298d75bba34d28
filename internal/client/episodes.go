package client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
)

// GetEpisodes queries /shows/{id}/episodes. A 404 is reported as a
// RequestFailure wrapping apperrors.ErrNotFound for the show.
func (c *client) GetEpisodes(ctx context.Context, showID models.ShowID) ([]models.Episode, error) {
	logger := config.GetLogger()
	logger.Debug().Str("showID", showID.String()).Msg("Fetching TVMaze episodes")

	endpoint := fmt.Sprintf("%s/shows/%s/episodes", c.baseURL, url.PathEscape(showID.String()))
	body, cached, err := c.fetch(ctx, request{
		op:       "get episodes",
		endpoint: "episodes",
		url:      endpoint,
		resource: "show",
		id:       showID,
	})
	if err != nil {
		return nil, err
	}

	episodes, err := c.episodeParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, withURL(err, endpoint)
	}
	c.remember(endpoint, body, cached)

	logger.Info().Str("showID", showID.String()).Int("count", len(episodes)).Msg("Episode fetch completed")
	return episodes, nil
}
