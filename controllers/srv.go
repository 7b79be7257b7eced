// controllers/srv.go
package controllers

import (
	"log/slog"

	"Gin_postgres_redis_property_invite/app"
	"Gin_postgres_redis_property_invite/db"
	"Gin_postgres_redis_property_invite/metrics"
	"Gin_postgres_redis_property_invite/services"
)

// Srv is the dependency hub shared by the controllers.
type Srv struct {
	Repo      *db.Repo
	Lookup    *services.LookupService
	Processor *services.AcceptanceProcessor
	Metrics   *metrics.Metrics
	Log       *slog.Logger
}

// NewSrv wires the services onto repo, which also serves as the identity
// provider.
func NewSrv(repo *db.Repo, m *metrics.Metrics, log *slog.Logger) *Srv {
	return &Srv{
		Repo:      repo,
		Lookup:    services.NewLookupService(repo, log),
		Processor: services.NewAcceptanceProcessor(repo, repo, log),
		Metrics:   m,
		Log:       log,
	}
}

func GetSrv(a *app.App, m *metrics.Metrics) *Srv {
	return NewSrv(db.NewRepo(a.DB), m, a.Log)
}
