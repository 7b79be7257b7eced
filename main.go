package main

import (
	"Gin_postgres_redis_property_invite/app"
	"Gin_postgres_redis_property_invite/config"
	"Gin_postgres_redis_property_invite/metrics"
	"Gin_postgres_redis_property_invite/routes"
	"log/slog"
	"os"
)

func main() {
	config.LoadEnv()

	application, err := app.New()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := routes.RegisterRoutes(application.Router, application, metrics.New()); err != nil {
		application.Log.Error("route setup failed", "error", err)
		os.Exit(1)
	}

	addr := ":" + application.Config.Port
	application.Log.Info("listening", "addr", addr)
	if err := application.Router.Run(addr); err != nil {
		application.Log.Error("server stopped", "error", err)
	}
}
