package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/lyrics-service/internal/build"
	"github.com/rohmanhakim/lyrics-service/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	baseURL       string
	userAgent     string
	concurrency   int
	minFetchDelay time.Duration
	maxFetchDelay time.Duration
	timeout       time.Duration
	storeBackend  string
	postgresDSN   string
	redisAddr     string
	redisPassword string
	redisDB       int
	listenAddr    string
	logLevel      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "lyrics-service",
	Version: build.FullVersion(),
	Short:   "A caching lyrics retrieval service.",
	Long: `lyrics-service is an HTTP service that retrieves song lyrics from a
lyrics website, extracts the lyric text from the page markup, and caches
the result under a caller-assigned track id.

Lookups are cache-first: a track already stored is never fetched again.
Outbound fetches are bounded by a fixed number of admission slots and a
randomized pre-request delay to stay polite toward the source.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "absolute http(s) URL of the lyrics source")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "maximum number of in-flight fetches against the source")
	rootCmd.PersistentFlags().DurationVar(&minFetchDelay, "min-fetch-delay", 0, "lower bound of the random pre-request delay")
	rootCmd.PersistentFlags().DurationVar(&maxFetchDelay, "max-fetch-delay", 0, "upper bound of the random pre-request delay")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP fetch")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store-backend", "", "lyrics store backend: postgres, redis, or memory")
	rootCmd.PersistentFlags().StringVar(&postgresDSN, "postgres-dsn", "", "connection string for the postgres backend")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "", "address of the redis backend (host:port)")
	rootCmd.PersistentFlags().StringVar(&redisPassword, "redis-password", "", "password for the redis backend")
	rootCmd.PersistentFlags().IntVar(&redisDB, "redis-db", 0, "redis database number")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen-addr", "", "address the HTTP API listens on")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

// InitConfig reads in the config file if set, otherwise builds the config
// from CLI flags. baseURL is mandatory when no config file is given.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in the config file if set, otherwise builds the
// config from CLI flags, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	if baseURL == "" {
		return config.Config{}, fmt.Errorf("%w: --base-url is required when no config file is given", config.ErrInvalidConfig)
	}

	// Start with the default config and apply overrides using method chaining
	configBuilder := config.WithDefault(baseURL)

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithMaxConcurrentFetches(concurrency)
	}

	if minFetchDelay > 0 && maxFetchDelay > 0 {
		configBuilder = configBuilder.WithFetchDelayWindow(minFetchDelay, maxFetchDelay)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithRequestTimeout(timeout)
	}

	if storeBackend != "" {
		configBuilder = configBuilder.WithStoreBackend(storeBackend)
	}

	if postgresDSN != "" {
		configBuilder = configBuilder.WithPostgresDSN(postgresDSN)
	}

	if redisAddr != "" {
		configBuilder = configBuilder.WithRedis(redisAddr, redisPassword, redisDB)
	}

	if listenAddr != "" {
		configBuilder = configBuilder.WithListenAddr(listenAddr)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	baseURL = ""
	userAgent = ""
	concurrency = 0
	minFetchDelay = 0
	maxFetchDelay = 0
	timeout = 0
	storeBackend = ""
	postgresDSN = ""
	redisAddr = ""
	redisPassword = ""
	redisDB = 0
	listenAddr = ""
	logLevel = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetBaseURLForTest(url string) {
	baseURL = url
}

func SetConcurrencyForTest(n int) {
	concurrency = n
}

func SetStoreBackendForTest(backend string) {
	storeBackend = backend
}

func SetRedisAddrForTest(addr string) {
	redisAddr = addr
}
