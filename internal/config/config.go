// Package config reads the server settings from the environment.
//
// A .env file in the working directory is loaded first if present, so
// local development needs no exported variables. Variables that are
// already set win over the file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// The remote store is used only when both values are set.
	RemoteStoreURL string
	RemoteStoreKey string
	RemoteTimeout  time.Duration
	SyncInterval   time.Duration

	// An empty RedisURL disables the leaderboard cache.
	RedisURL       string
	LeaderboardTTL time.Duration

	UploadDir      string
	UploadMaxBytes int64

	LogLevel  string
	LogFormat string

	DefaultPassword  string
	ActivityLogLimit int
}

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr: getenv("ADDR", ":8080"),
		// modernc.org/sqlite URI parameters:
		//   _pragma=journal_mode(WAL)  : readers don't block writers
		//   _pragma=busy_timeout(5000) : wait up to 5 s instead of SQLITE_BUSY
		DatabaseURL: getenv("DATABASE_URL",
			"ecolearn.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),
		JWTSecret: getenv("JWT_SECRET", "changeme-use-a-real-secret-in-production"),

		RemoteStoreURL: getenv("REMOTE_STORE_URL", ""),
		RemoteStoreKey: getenv("REMOTE_STORE_KEY", ""),
		RemoteTimeout:  getenvDuration("REMOTE_TIMEOUT", 3*time.Second),
		SyncInterval:   getenvDuration("SYNC_INTERVAL", time.Minute),

		RedisURL:       getenv("REDIS_URL", ""),
		LeaderboardTTL: getenvDuration("LEADERBOARD_TTL", 30*time.Second),

		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(getenvInt("UPLOAD_MAX_BYTES", 5<<20)),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),

		DefaultPassword:  getenv("DEFAULT_PASSWORD", "password123"),
		ActivityLogLimit: getenvInt("ACTIVITY_LOG_LIMIT", 500),
	}
}

// RemoteConfigured reports whether a remote store should be used. Missing
// credentials are a routing decision, not an error.
func (c Config) RemoteConfigured() bool {
	return c.RemoteStoreURL != "" && c.RemoteStoreKey != ""
}

// getenv returns the value of the named environment variable, or fallback
// if the variable is not set or is empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

// getenvDuration accepts Go durations ("30s", "2m").
func getenvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
