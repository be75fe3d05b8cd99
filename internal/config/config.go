package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Store backends the service can persist lyrics to.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"
)

type Config struct {
	//===============
	// Lyrics source
	//===============
	// Absolute http(s) endpoint the derived lookup paths are resolved against.
	baseURL string
	// User agent sent with every fetch. In raw string
	userAgent string

	//===============
	// Politeness
	//===============
	// Maximum number of in-flight requests against the source; the sole
	// throttle for batch fan-out.
	maxConcurrentFetches int
	// Bounds of the uniform random delay applied while an admission slot
	// is held, before the request is issued.
	minFetchDelay time.Duration
	maxFetchDelay time.Duration
	// Maximum time of a single fetch request
	requestTimeout time.Duration

	//===============
	// Extraction policy
	//===============
	// Selector matching the source's lyrics-container marker attribute.
	containerSelector string
	// Inline formatting tags kept verbatim in cleaned text.
	inlineTags []string
	// Child element of a hyperlink whose inner content replaces the link.
	linkTextTag string

	//===============
	// Store
	//===============
	// One of "postgres", "redis", "memory".
	storeBackend string
	postgresDSN  string
	redisAddr    string
	redisPass    string
	redisDB      int

	//===============
	// Server
	//===============
	listenAddr string
	logLevel   string
}

type configDTO struct {
	BaseURL              string   `json:"baseUrl"`
	UserAgent            string   `json:"userAgent,omitempty"`
	MaxConcurrentFetches int      `json:"maxConcurrentFetches,omitempty"`
	MinFetchDelayMs      int      `json:"minFetchDelayMs,omitempty"`
	MaxFetchDelayMs      int      `json:"maxFetchDelayMs,omitempty"`
	RequestTimeoutMs     int      `json:"requestTimeoutMs,omitempty"`
	ContainerSelector    string   `json:"containerSelector,omitempty"`
	InlineTags           []string `json:"inlineTags,omitempty"`
	LinkTextTag          string   `json:"linkTextTag,omitempty"`
	StoreBackend         string   `json:"storeBackend,omitempty"`
	PostgresDSN          string   `json:"postgresDsn,omitempty"`
	RedisAddr            string   `json:"redisAddr,omitempty"`
	RedisPassword        string   `json:"redisPassword,omitempty"`
	RedisDB              int      `json:"redisDb,omitempty"`
	ListenAddr           string   `json:"listenAddr,omitempty"`
	LogLevel             string   `json:"logLevel,omitempty"`
}

// WithDefault starts a config at the source's known-good politeness
// settings: 10 admission slots and a 250-1000 ms pre-request delay.
func WithDefault(baseURL string) *Config {
	return &Config{
		baseURL:              baseURL,
		userAgent:            "lyrics-service/1.0",
		maxConcurrentFetches: 10,
		minFetchDelay:        250 * time.Millisecond,
		maxFetchDelay:        1000 * time.Millisecond,
		requestTimeout:       15 * time.Second,
		containerSelector:    "div[data-lyrics-container='true']",
		inlineTags:           []string{"br", "i", "b"},
		linkTextTag:          "span",
		storeBackend:         StoreBackendMemory,
		listenAddr:           ":8000",
		logLevel:             "info",
	}
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg, err := WithDefault(dto.BaseURL).Build()
	if err != nil {
		return Config{}, err
	}

	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxConcurrentFetches != 0 {
		cfg.maxConcurrentFetches = dto.MaxConcurrentFetches
	}
	if dto.MinFetchDelayMs != 0 {
		cfg.minFetchDelay = time.Duration(dto.MinFetchDelayMs) * time.Millisecond
	}
	if dto.MaxFetchDelayMs != 0 {
		cfg.maxFetchDelay = time.Duration(dto.MaxFetchDelayMs) * time.Millisecond
	}
	if dto.RequestTimeoutMs != 0 {
		cfg.requestTimeout = time.Duration(dto.RequestTimeoutMs) * time.Millisecond
	}
	if dto.ContainerSelector != "" {
		cfg.containerSelector = dto.ContainerSelector
	}
	if len(dto.InlineTags) > 0 {
		cfg.inlineTags = dto.InlineTags
	}
	if dto.LinkTextTag != "" {
		cfg.linkTextTag = dto.LinkTextTag
	}
	if dto.StoreBackend != "" {
		cfg.storeBackend = dto.StoreBackend
	}
	if dto.PostgresDSN != "" {
		cfg.postgresDSN = dto.PostgresDSN
	}
	if dto.RedisAddr != "" {
		cfg.redisAddr = dto.RedisAddr
	}
	if dto.RedisPassword != "" {
		cfg.redisPass = dto.RedisPassword
	}
	if dto.RedisDB != 0 {
		cfg.redisDB = dto.RedisDB
	}
	if dto.ListenAddr != "" {
		cfg.listenAddr = dto.ListenAddr
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}

	return cfg.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxConcurrentFetches(n int) *Config {
	c.maxConcurrentFetches = n
	return c
}

func (c *Config) WithFetchDelayWindow(min, max time.Duration) *Config {
	c.minFetchDelay = min
	c.maxFetchDelay = max
	return c
}

func (c *Config) WithRequestTimeout(timeout time.Duration) *Config {
	c.requestTimeout = timeout
	return c
}

func (c *Config) WithStoreBackend(backend string) *Config {
	c.storeBackend = backend
	return c
}

func (c *Config) WithPostgresDSN(dsn string) *Config {
	c.postgresDSN = dsn
	return c
}

func (c *Config) WithRedis(addr, password string, db int) *Config {
	c.redisAddr = addr
	c.redisPass = password
	c.redisDB = db
	return c
}

func (c *Config) WithListenAddr(addr string) *Config {
	c.listenAddr = addr
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.baseURL == "" {
		return Config{}, fmt.Errorf("%w: baseUrl is required", ErrInvalidConfig)
	}
	if c.maxConcurrentFetches < 1 {
		return Config{}, fmt.Errorf("%w: maxConcurrentFetches must be at least 1", ErrInvalidConfig)
	}
	if c.minFetchDelay < 0 || c.maxFetchDelay < c.minFetchDelay {
		return Config{}, fmt.Errorf("%w: fetch delay window must satisfy 0 <= min <= max", ErrInvalidConfig)
	}
	if c.requestTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: requestTimeoutMs must be positive", ErrInvalidConfig)
	}
	if c.containerSelector == "" {
		return Config{}, fmt.Errorf("%w: containerSelector is required", ErrInvalidConfig)
	}
	switch c.storeBackend {
	case StoreBackendPostgres:
		if c.postgresDSN == "" {
			return Config{}, fmt.Errorf("%w: postgresDsn is required for the postgres backend", ErrInvalidConfig)
		}
	case StoreBackendRedis:
		if c.redisAddr == "" {
			return Config{}, fmt.Errorf("%w: redisAddr is required for the redis backend", ErrInvalidConfig)
		}
	case StoreBackendMemory:
	default:
		return Config{}, fmt.Errorf("%w: unknown storeBackend %q", ErrInvalidConfig, c.storeBackend)
	}
	return *c, nil
}

func (c Config) BaseURL() string {
	return c.baseURL
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxConcurrentFetches() int {
	return c.maxConcurrentFetches
}

func (c Config) MinFetchDelay() time.Duration {
	return c.minFetchDelay
}

func (c Config) MaxFetchDelay() time.Duration {
	return c.maxFetchDelay
}

func (c Config) RequestTimeout() time.Duration {
	return c.requestTimeout
}

func (c Config) ContainerSelector() string {
	return c.containerSelector
}

func (c Config) InlineTags() []string {
	return c.inlineTags
}

func (c Config) LinkTextTag() string {
	return c.linkTextTag
}

func (c Config) StoreBackend() string {
	return c.storeBackend
}

func (c Config) PostgresDSN() string {
	return c.postgresDSN
}

func (c Config) RedisAddr() string {
	return c.redisAddr
}

func (c Config) RedisPassword() string {
	return c.redisPass
}

func (c Config) RedisDB() int {
	return c.redisDB
}

func (c Config) ListenAddr() string {
	return c.listenAddr
}

func (c Config) LogLevel() string {
	return c.logLevel
}
