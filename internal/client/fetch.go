package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/showfinder/showfinder/internal/apperrors"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/metrics"
	"github.com/showfinder/showfinder/internal/parser"
)

// maxBodySize bounds how much of a TVMaze response is read. The largest
// episode lists are a few hundred kilobytes.
const maxBodySize = 8 << 20

// request describes one GET against the TVMaze API.
type request struct {
	op       string      // operation name used in errors, e.g. "search shows"
	endpoint string      // metrics label
	url      string
	resource string      // resource named by a 404
	id       interface{} // identifier named by a 404
}

// fetch performs the GET (or serves it from cache) and returns the UTF-8
// response body and whether it came from the cache. Every failure is a
// *apperrors.RequestFailure.
func (c *client) fetch(ctx context.Context, r request) ([]byte, bool, error) {
	logger := config.GetLogger()
	start := time.Now()
	defer func() {
		metrics.TVMazeRequestDuration.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())
	}()

	if c.cache != nil {
		if body, ok := c.cache.Get(r.url); ok {
			logger.Debug().Str("url", r.url).Int("size", len(body)).Msg("Serving TVMaze response from cache")
			metrics.TVMazeRequestsTotal.WithLabelValues(r.endpoint, "cache_hit").Inc()
			return body, true, nil
		}
	}

	body, err := c.get(ctx, r)
	if err != nil {
		metrics.TVMazeRequestsTotal.WithLabelValues(r.endpoint, string(apperrors.ReasonOf(err))).Inc()
		logger.Debug().Err(err).Str("url", r.url).Msg("TVMaze request failed")
		return nil, false, err
	}

	metrics.TVMazeRequestsTotal.WithLabelValues(r.endpoint, "success").Inc()
	return body, false, nil
}

// remember caches a body once it has parsed, so a malformed response is
// never replayed.
func (c *client) remember(url string, body []byte, fromCache bool) {
	if c.cache != nil && !fromCache {
		c.cache.Set(url, body)
	}
}

func (c *client) get(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, apperrors.NewRequestFailure(r.op, r.url, apperrors.ReasonNetwork, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return nil, apperrors.NewRequestFailure(r.op, r.url, apperrors.ReasonUnavailable, err)
		}
		return nil, apperrors.NewRequestFailure(r.op, r.url, apperrors.ReasonNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, apperrors.NewStatusFailure(r.op, r.url, resp.StatusCode, r.resource, r.id)
	}

	reader, err := parser.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.NewRequestFailure(r.op, r.url, apperrors.ReasonDecode, err)
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, apperrors.NewRequestFailure(r.op, r.url, apperrors.ReasonNetwork, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// isBreakerFailure decides which outcomes count against the circuit breaker:
// transport errors, 5xx and rate limiting. A cancelled caller is not TVMaze's fault.
func isBreakerFailure(resp *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

// withURL fills in the request URL on failures produced by the parser.
func withURL(err error, url string) error {
	var rf *apperrors.RequestFailure
	if errors.As(err, &rf) && rf.URL == "" {
		rf.URL = url
	}
	return err
}
