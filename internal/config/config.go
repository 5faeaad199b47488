package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	JWT     JWTConfig
	Media   MediaConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// IsProduction reports whether the service runs with production defaults (JSON logs, gin release mode).
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type MongoDBConfig struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
}

// AuthConfig controls the API-key gate and the per-user token gate.
type AuthConfig struct {
	APIPrefix        string
	APIKey           string
	APIKeyContact    string
	RequireUserToken bool
	OpenSignup       bool
}

// MinJWTSecretLength is the shortest signing secret accepted while admin
// routes require a user token.
const MinJWTSecretLength = 32

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// MediaConfig describes the S3-compatible image host and the upload contract.
type MediaConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Bucket        string
	PublicBaseURL string
	Folder        string
	MaxUploadSize int64
	MaxDimension  int
	MaxPixels     int64
	Quality       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and an optional .env file.
// A missing MONGODB_URI is reported as an error; callers treat it as fatal.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGODB_DATABASE", "nexfolio")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_MAX_POOL_SIZE", 10)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("API_KEY_CONTACT", "nexbytes24x7@gmail.com")
	v.SetDefault("JWT_TOKEN_TTL", 120)
	v.SetDefault("AUTH_REQUIRE_USER_TOKEN", true)
	v.SetDefault("AUTH_OPEN_SIGNUP", true)
	v.SetDefault("MINIO_BUCKET", "media")
	v.SetDefault("MEDIA_FOLDER", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("IMAGE_MAX_DIMENSION", 1200)
	v.SetDefault("IMAGE_MAX_PIXELS", 40_000_000)
	v.SetDefault("IMAGE_QUALITY", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("SERVER_ENVIRONMENT"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:         strings.TrimSpace(v.GetString("MONGODB_URI")),
			Database:    v.GetString("MONGODB_DATABASE"),
			Timeout:     time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			MaxPoolSize: v.GetUint64("MONGODB_MAX_POOL_SIZE"),
		},
		Auth: AuthConfig{
			APIPrefix:        "/" + strings.Trim(v.GetString("API_PREFIX"), "/"),
			APIKey:           v.GetString("API_KEY"),
			APIKeyContact:    v.GetString("API_KEY_CONTACT"),
			RequireUserToken: v.GetBool("AUTH_REQUIRE_USER_TOKEN"),
			OpenSignup:       v.GetBool("AUTH_OPEN_SIGNUP"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			TokenTTL: time.Duration(v.GetInt("JWT_TOKEN_TTL")) * time.Minute,
		},
		Media: MediaConfig{
			Endpoint:      v.GetString("MINIO_ENDPOINT"),
			AccessKey:     v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:     v.GetString("MINIO_SECRET_KEY"),
			UseSSL:        v.GetBool("MINIO_USE_SSL"),
			Bucket:        v.GetString("MINIO_BUCKET"),
			PublicBaseURL: strings.TrimRight(v.GetString("MEDIA_PUBLIC_BASE_URL"), "/"),
			Folder:        strings.Trim(v.GetString("MEDIA_FOLDER"), "/"),
			MaxUploadSize: v.GetInt64("UPLOAD_MAX_BYTES"),
			MaxDimension:  v.GetInt("IMAGE_MAX_DIMENSION"),
			MaxPixels:     v.GetInt64("IMAGE_MAX_PIXELS"),
			Quality:       v.GetInt("IMAGE_QUALITY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if cfg.Media.PublicBaseURL == "" && cfg.Media.Endpoint != "" {
		scheme := "http"
		if cfg.Media.UseSSL {
			scheme = "https"
		}
		cfg.Media.PublicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Media.Endpoint, cfg.Media.Bucket)
	}

	if cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("environment variable MONGODB_URI is required")
	}
	if cfg.Auth.RequireUserToken && len(cfg.JWT.Secret) < MinJWTSecretLength {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be at least %d bytes while AUTH_REQUIRE_USER_TOKEN is enabled", MinJWTSecretLength)
	}
	return cfg, nil
}

// Warnings lists insecure or degraded settings worth logging at startup.
func (c *Config) Warnings() []string {
	var out []string
	if c.JWT.Secret == "" {
		out = append(out, "JWT_SECRET is not set; set a secure value in production")
	}
	if c.Auth.APIKey == "" {
		out = append(out, "API_KEY is not set; every API request will be rejected")
	}
	if c.Media.Endpoint == "" {
		out = append(out, "MINIO_ENDPOINT is not set; uploads and image cleanup are disabled")
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
