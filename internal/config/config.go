package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is read once at startup.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	MinIO     MinIOConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MongoDBConfig describes the document store. An empty URI leaves the
// API running without storage; data endpoints then report it unavailable.
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
	// Driver is "mongo" or "memory".
	Driver string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLTTL    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// the first name wins; the second is accepted for compatibility
	_ = v.BindEnv("port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("database_url", "DATABASE_URL", "MONGODB_URI")
	_ = v.BindEnv("database_name", "DATABASE_NAME", "MONGODB_DATABASE")

	v.SetDefault("port", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("database_name", "farmconnect")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "farmconnect")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_URL_TTL_MINUTES", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("port"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      strings.TrimSpace(v.GetString("database_url")),
			Database: v.GetString("database_name"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			Driver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			URLTTL:    time.Duration(v.GetInt("MINIO_URL_TTL_MINUTES")) * time.Minute,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	if cfg.MongoDB.Timeout <= 0 {
		cfg.MongoDB.Timeout = 10 * time.Second
	}
	return cfg, nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
