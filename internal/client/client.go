package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/rs/zerolog"

	"github.com/showfinder/showfinder/internal/cache"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/parser"
)

// Client defines the interface for querying the TVMaze show directory
type Client interface {
	// SearchShows returns the shows matching query, in TVMaze's order.
	// The caller is responsible for passing a non-empty, trimmed query.
	SearchShows(ctx context.Context, query string) ([]models.Show, error)

	// GetEpisodes returns the episode list of one show, in TVMaze's order.
	GetEpisodes(ctx context.Context, showID models.ShowID) ([]models.Episode, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// Option customizes a client built by NewClient.
type Option func(*options)

type options struct {
	onAvailability func(available bool)
	cache          cache.Cache
}

// WithAvailabilityListener registers fn to be called when the circuit breaker
// guarding TVMaze opens (false) or closes again (true).
func WithAvailabilityListener(fn func(available bool)) Option {
	return func(o *options) { o.onAvailability = fn }
}

// WithCache overrides the response cache built from config.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	cache         cache.Cache
	searchParser  parser.Parser[models.Show]
	episodeParser parser.Parser[models.Episode]
}

// NewClient creates a new client instance with proxy, cache and circuit
// breaker configuration taken from cfg.
func NewClient(cfg *config.Config, opts ...Option) Client {
	logger := config.GetLogger()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	timeout := parseDuration(logger, "client_timeout", cfg.ClientTimeout, 10*time.Second)

	// Clone DefaultTransport to preserve its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	breaker := newBreaker(cfg, logger, o.onAvailability)

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: failsafehttp.NewRoundTripper(newCompressionTransport(baseTransport), breaker),
	}

	responseCache := o.cache
	if responseCache == nil {
		responseCache = newResponseCache(cfg, logger)
	}

	baseURL := cfg.TVMazeBaseURL
	if baseURL == "" {
		baseURL = config.DefaultTVMazeBaseURL
	}

	return &client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		cache:         responseCache,
		searchParser:  parser.NewSearchParser(),
		episodeParser: parser.NewEpisodeParser(),
	}
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

func newBreaker(cfg *config.Config, logger zerolog.Logger, onAvailability func(bool)) circuitbreaker.CircuitBreaker[*http.Response] {
	threshold := cfg.CircuitBreaker.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	delay := parseDuration(logger, "circuit_breaker.delay", cfg.CircuitBreaker.Delay, 30*time.Second)

	return circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(isBreakerFailure).
		WithFailureThreshold(threshold).
		WithDelay(delay).
		OnOpen(func(circuitbreaker.StateChangedEvent) {
			logger.Warn().Dur("delay", delay).Msg("TVMaze circuit breaker opened")
			if onAvailability != nil {
				onAvailability(false)
			}
		}).
		OnClose(func(circuitbreaker.StateChangedEvent) {
			logger.Info().Msg("TVMaze circuit breaker closed")
			if onAvailability != nil {
				onAvailability(true)
			}
		}).
		Build()
}

func newResponseCache(cfg *config.Config, logger zerolog.Logger) cache.Cache {
	if cfg.Cache.Type == "" || cfg.Cache.Type == "none" {
		return nil
	}

	size := cfg.Cache.Size
	if size <= 0 {
		size = 500
	}
	ttl := parseDuration(logger, "cache.ttl", cfg.Cache.TTL, 10*time.Minute)

	c, err := cache.New(cfg.Cache.Type, cache.ProviderConfig{
		Size:          size,
		TTL:           ttl,
		Logger:        cacheLogger{logger},
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         "tvmaze",
	})
	if err != nil {
		logger.Warn().Err(err).Str("type", cfg.Cache.Type).Msg("Failed to create response cache, continuing without cache")
		return nil
	}

	logger.Info().Str("type", cfg.Cache.Type).Int("size", size).Dur("ttl", ttl).Msg("Response cache enabled")
	return c
}

func parseDuration(logger zerolog.Logger, key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str(key, value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

// cacheLogger adapts zerolog to cache.Logger.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}
