package client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
)

// SearchShows queries /search/shows and maps each result's show object.
// Missing summaries and images are replaced by the display placeholders.
func (c *client) SearchShows(ctx context.Context, query string) ([]models.Show, error) {
	logger := config.GetLogger()
	logger.Debug().Str("query", query).Msg("Searching TVMaze shows")

	endpoint := fmt.Sprintf("%s/search/shows?q=%s", c.baseURL, url.QueryEscape(query))
	body, cached, err := c.fetch(ctx, request{
		op:       "search shows",
		endpoint: "search",
		url:      endpoint,
		resource: "search",
		id:       query,
	})
	if err != nil {
		return nil, err
	}

	shows, err := c.searchParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, withURL(err, endpoint)
	}
	c.remember(endpoint, body, cached)

	logger.Info().Str("query", query).Int("count", len(shows)).Msg("Show search completed")
	return shows, nil
}
