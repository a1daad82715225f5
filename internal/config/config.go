package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	Env            string
	StoreDriver    string
	DatabaseURL    string
	MongoDatabase  string
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	UploadBackend  string
	UploadDir      string
	S3             S3Config
	RateLimit      int
	RateWindow     time.Duration
	LogLevel       string
	SwaggerHost    string
}

// S3Config configures the object storage upload backend.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "5000"),
		Env:            getEnv("APP_ENV", "development"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "mysql")),
		DatabaseURL:    getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/nutrition?charset=utf8mb4&parseTime=True&loc=UTC"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "nutrition"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		JWTExpiry:      getEnvDuration("JWT_EXPIRE", 7*24*time.Hour),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		UploadBackend:  strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		S3: S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
		RateLimit:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateWindow:  getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether internal error detail must be hidden.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations plus a whole-day form such as "7d".
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
