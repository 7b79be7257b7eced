package routes

import (
	"context"
	"net/http"
	"time"

	"Gin_postgres_redis_property_invite/app"
	"Gin_postgres_redis_property_invite/controllers"
	"Gin_postgres_redis_property_invite/db"
	"Gin_postgres_redis_property_invite/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App, m *metrics.Metrics) error {
	s := controllers.GetSrv(a, m)
	limiter, err := app.NewRateLimiter(a.RDB, "validate", a.Config.ValidateRateLimit, time.Minute, a.Log)
	if err != nil {
		return err
	}
	Register(r, s, limiter.Middleware())
	return nil
}

// Register mounts the invitation endpoints. validateMW runs in front of the
// public lookup only.
func Register(r *gin.Engine, s *controllers.Srv, validateMW ...gin.HandlerFunc) {
	inviteCtl := controllers.GetInviteController(s)

	r.GET("/healthz", func(c *app.Ctx) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, s.Repo.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, app.H{"ok": false})
			return
		}
		c.JSON(http.StatusOK, app.H{"ok": true})
	})
	r.GET("/metrics", s.Metrics.Handler())

	// ------------------------------
	// Invitations (public: the caller may not hold a session yet)
	// ------------------------------
	inv := r.Group("/api/invites")
	{
		inv.POST("/validate", append(validateMW, inviteCtl.Validate)...)
		inv.POST("/accept", inviteCtl.Accept)
	}
}
