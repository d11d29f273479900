package app

import (
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/adtech-learning/internal/favicon"
	httpMW "github.com/yungbote/adtech-learning/internal/http/middleware"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/envutil"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

const DefaultPort = 4500

type Config struct {
	Host        string
	Port        int
	LogMode     string
	GinMode     string
	Environment string
	Version     string

	// Serverless suppresses the listener; the host platform invokes Handler.
	Serverless bool

	CORSOrigins    []string
	MetricsEnabled bool
	TracingEnabled bool

	PageCacheEnabled bool
	PageCacheWarm    bool
	FaviconColor     string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set are left alone.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func LogMode() string {
	return envutil.String("LOG_MODE", "development")
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.Int("PORT", DefaultPort)
	if port <= 0 || port > 65535 {
		log.Warn("invalid PORT, using default", "port", port, "default", DefaultPort)
		port = DefaultPort
	}
	cfg := Config{
		Host:        envutil.String("HOST", ""),
		Port:        port,
		LogMode:     LogMode(),
		GinMode:     envutil.String("GIN_MODE", ""),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		Serverless: envutil.Bool("VERCEL", false) || envutil.Bool("SERVERLESS", false),

		CORSOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", httpMW.DefaultCORSOrigins),
		MetricsEnabled: observability.Enabled(),
		TracingEnabled: observability.TracingEnabled(),

		PageCacheEnabled: envutil.Bool("PAGE_CACHE_ENABLED", true),
		PageCacheWarm:    envutil.Bool("PAGE_CACHE_WARM", true),
		FaviconColor:     envutil.String("FAVICON_COLOR", favicon.DefaultColor),

		ReadTimeout:     seconds("READ_TIMEOUT_SECONDS", 10),
		WriteTimeout:    seconds("WRITE_TIMEOUT_SECONDS", 15),
		ShutdownTimeout: seconds("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}
	log.Info("config loaded",
		"addr", cfg.Addr(),
		"serverless", cfg.Serverless,
		"metrics", cfg.MetricsEnabled,
		"tracing", cfg.TracingEnabled,
		"page_cache", cfg.PageCacheEnabled,
	)
	return cfg
}

// DefaultConfig is the configuration with no environment applied.
func DefaultConfig() Config {
	return Config{
		Port:             DefaultPort,
		LogMode:          "development",
		Environment:      "development",
		Version:          "dev",
		CORSOrigins:      httpMW.DefaultCORSOrigins,
		PageCacheEnabled: true,
		PageCacheWarm:    true,
		FaviconColor:     favicon.DefaultColor,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func seconds(name string, def int) time.Duration {
	n := envutil.Int(name, def)
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
