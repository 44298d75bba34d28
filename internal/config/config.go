package config

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all TVMaze requests.
const DefaultUserAgent = "ShowFinder/1.0 (+https://github.com/showfinder/showfinder)"

// DefaultTVMazeBaseURL is the public TVMaze API.
const DefaultTVMazeBaseURL = "https://api.tvmaze.com"

type Config struct {
	TVMazeBaseURL         string `mapstructure:"tvmaze_base_url"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "10s"
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Type  string `mapstructure:"type"` // "", "memory" or "redis"
		Size  int    `mapstructure:"size"` // Maximum number of cached responses
		TTL   string `mapstructure:"ttl"`
		Redis struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Health struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"health"`
	Sessions struct {
		Size int    `mapstructure:"size"`
		TTL  string `mapstructure:"ttl"`
	} `mapstructure:"sessions"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	CircuitBreaker struct {
		FailureThreshold uint   `mapstructure:"failure_threshold"`
		Delay            string `mapstructure:"delay"`
	} `mapstructure:"circuit_breaker"`
}

var (
	mu           sync.RWMutex
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig("")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	apply(config)
}

// Reload reads configuration again, from path when it is not empty, and
// replaces the global config and logger level.
func Reload(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	apply(config)
	return config, nil
}

func apply(config *Config) {
	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)

	mu.Lock()
	logger = logger.Level(level)
	globalConfig = config
	mu.Unlock()

	logger.Debug().Str("level", level.String()).Msg("Configuration loaded")
}

// SetLogLevel overrides the configured log level, e.g. from a command-line flag.
func SetLogLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)

	mu.Lock()
	logger = logger.Level(parsed)
	if globalConfig != nil {
		globalConfig.LogLevel = level
	}
	mu.Unlock()
	return nil
}

// LoadConfig reads config.yaml from the working directory (or path when set)
// and overlays APP_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.TVMazeBaseURL == "" {
		config.TVMazeBaseURL = DefaultTVMazeBaseURL
	}
	config.TVMazeBaseURL = strings.TrimRight(config.TVMazeBaseURL, "/")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tvmaze_base_url", DefaultTVMazeBaseURL)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "10s")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache.type", "")
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("health.enabled", false)
	v.SetDefault("health.port", 9091)
	v.SetDefault("sessions.size", 10000)
	v.SetDefault("sessions.ttl", "24h")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("circuit_breaker.failure_threshold", 5)
	v.SetDefault("circuit_breaker.delay", "30s")
}

func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

func GetUserAgent() string {
	if cfg := GetConfig(); cfg != nil && cfg.UserAgent != "" {
		return cfg.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
