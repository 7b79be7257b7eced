package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"Gin_postgres_redis_property_invite/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Ctx = gin.Context
type H = gin.H

// App aggregates the process-level dependencies. Handlers receive what they
// need from it through constructors.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config
	Log    *slog.Logger
}

type Config struct {
	DB                db.Config
	RedisAddr         string
	RedisPwd          string
	WebOrigin         string
	Port              string
	LogLevel          slog.Level
	ValidateRateLimit int
}

func New() (*App, error) {
	cfg := LoadConfig()
	log := NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(log)

	dbConn, err := db.ConnectDB(cfg.DB)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rdb := connectRedis(ctx, cfg, log)

	r := NewRouter(log, cfg.WebOrigin)
	return &App{Router: r, DB: dbConn, RDB: rdb, Config: cfg, Log: log}, nil
}

// connectRedis never fails: only the rate limiter uses redis, and it lets
// requests through while redis is down.
func connectRedis(ctx context.Context, cfg Config, log *slog.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WarnContext(ctx, "redis unavailable, rate limiting disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
	}
	return rdb
}

// NewRouter answers unknown routes and wrong methods with the JSON error shape.
func NewRouter(log *slog.Logger, webOrigin string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), RequestLog(log))
	useCORS(r, webOrigin)
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, H{"error": "method_not_allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, H{"error": "not_found"})
	})
	return r
}

func (a *App) Close() {
	_ = a.RDB.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func LoadConfig() Config {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	limit, err := strconv.Atoi(get("VALIDATE_RATE_LIMIT", "30"))
	if err != nil || limit < 0 {
		limit = 30
	}
	return Config{
		DB: db.Config{
			Host:     get("DB_HOST", "127.0.0.1"),
			User:     get("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     get("DB_NAME", "property"),
			Port:     get("DB_PORT", "5432"),
		},
		RedisAddr:         get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:          os.Getenv("REDIS_PASSWORD"),
		WebOrigin:         get("WEB_ORIGIN", "http://localhost:3000"),
		Port:              get("PORT", "3001"),
		LogLevel:          parseLevel(get("LOG_LEVEL", "info")),
		ValidateRateLimit: limit,
	}
}
