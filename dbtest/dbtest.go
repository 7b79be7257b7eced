// Package dbtest opens an in-memory SQLite store with the production schema,
// for repository, service and handler tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"Gin_postgres_redis_property_invite/db"
	"Gin_postgres_redis_property_invite/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewRepo returns a migrated repo backed by a private in-memory database.
// The pool holds a single connection, so transactions run one at a time.
func NewRepo(t testing.TB) *db.Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(conn))
	return db.NewRepo(conn)
}

func MustUser(t testing.TB, repo *db.Repo, email, displayName string) *models.User {
	t.Helper()
	u := &models.User{Username: email, DisplayName: displayName}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func MustProperty(t testing.TB, repo *db.Repo, name, ownerID string) *models.Property {
	t.Helper()
	p := &models.Property{Name: name, OwnerID: ownerID}
	require.NoError(t, repo.CreateProperty(context.Background(), p))
	return p
}

// MustInvitation fills in a token and a one-day expiry when they are unset.
func MustInvitation(t testing.TB, repo *db.Repo, inv models.Invitation) *models.Invitation {
	t.Helper()
	if inv.Token == "" {
		inv.Token = "tok-" + inv.Email + "-" + inv.PropertyID
	}
	if inv.ExpiresAt.IsZero() {
		inv.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	if inv.InviteType == "" {
		inv.InviteType = models.InviteTypeTenant
	}
	require.NoError(t, repo.CreateInvitation(context.Background(), &inv))
	return &inv
}
