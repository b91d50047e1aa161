package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	MongoDB  MongoConfig
	JWT      JWTConfig
	Chat     ChatConfig
	Profiles ProfilesConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Port        string
	Debug       bool
}

type ServerConfig struct {
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type MongoConfig struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	ExpiryHour int
}

// ChatConfig carries the message-synchronization parameters: a fixed
// 3-second poll cadence over a 1000-record page.
type ChatConfig struct {
	PollInterval time.Duration
	FetchLimit   int64
	MaxFileSize  int64
}

type ProfilesConfig struct {
	PageLimit  int64
	FetchLimit int64
}

// Load builds the configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "skillswap"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "8080"),
			Debug:       getEnvBool("APP_DEBUG", false),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		MongoDB: MongoConfig{
			URI:                    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:               getEnv("MONGODB_DATABASE", "skillswap"),
			MaxPoolSize:            uint64(getEnvInt("MONGODB_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getEnvInt("MONGODB_MIN_POOL_SIZE", 5)),
			MaxConnIdleTime:        getEnvDuration("MONGODB_MAX_CONN_IDLE_TIME", 30*time.Minute),
			ConnectTimeout:         getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			ServerSelectionTimeout: getEnvDuration("MONGODB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "change-me-in-production"),
			Issuer:     getEnv("JWT_ISSUER", "skillswap-backend"),
			Audience:   getEnv("JWT_AUDIENCE", "skillswap-app"),
			ExpiryHour: getEnvInt("JWT_EXPIRY_HOUR", 24),
		},
		Chat: ChatConfig{
			PollInterval: getEnvDuration("CHAT_POLL_INTERVAL", 3*time.Second),
			FetchLimit:   int64(getEnvInt("CHAT_FETCH_LIMIT", 1000)),
			MaxFileSize:  int64(getEnvInt("CHAT_MAX_FILE_SIZE", 10*1024*1024)),
		},
		Profiles: ProfilesConfig{
			PageLimit:  int64(getEnvInt("PROFILES_PAGE_LIMIT", 12)),
			FetchLimit: int64(getEnvInt("PROFILES_FETCH_LIMIT", 1000)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
