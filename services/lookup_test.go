package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"Gin_postgres_redis_property_invite/dbtest"
	"Gin_postgres_redis_property_invite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFinder struct{}

func (failingFinder) FindInvitationByToken(context.Context, string) (*models.InvitationDetails, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	repo := dbtest.NewRepo(t)
	owner := dbtest.MustUser(t, repo, "owner@x.com", "Olivia Owner")
	prop := dbtest.MustProperty(t, repo, "Flat 1", owner.ID)
	seed := func(token string, status models.InviteStatus, expires time.Time) *models.Invitation {
		return dbtest.MustInvitation(t, repo, models.Invitation{
			PropertyID: prop.ID,
			InviteType: models.InviteTypeTenant,
			Email:      "a@x.com",
			Token:      token,
			Status:     status,
			ExpiresAt:  expires,
			CreatedBy:  owner.ID,
		})
	}
	tomorrow, yesterday := now.Add(24*time.Hour), now.Add(-24*time.Hour)
	valid := seed("valid", models.InviteStatusSent, tomorrow)
	seed("pending", models.InviteStatusPending, tomorrow)
	seed("expired", models.InviteStatusSent, yesterday)
	seed("accepted", models.InviteStatusAccepted, tomorrow)
	seed("processing", models.InviteStatusProcessing, tomorrow)
	seed("accepted-and-expired", models.InviteStatusAccepted, yesterday)

	svc := NewLookupService(repo, nil).WithClock(func() time.Time { return now })

	t.Run("valid invitation carries display details", func(t *testing.T) {
		res, err := svc.Validate(ctx, "valid")
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Error)
		assert.Equal(t, valid.ID, res.InvitationID)
		assert.Equal(t, prop.ID, res.PropertyID)
		assert.Equal(t, "Flat 1", res.PropertyName)
		assert.Equal(t, models.InviteTypeTenant, res.InviteType)
		assert.Equal(t, owner.ID, res.InviterID)
		assert.Equal(t, "Olivia Owner", res.InviterName)
		require.NotNil(t, res.ExpiresAt)
		assert.True(t, tomorrow.Equal(*res.ExpiresAt))
	})

	verdicts := map[string]LookupResult{
		"pending":              {Valid: true},
		"unknown-token":        {Error: ReasonNotFound},
		"expired":              {Error: ReasonExpired},
		"accepted":             {Error: ReasonAlreadyUsed},
		"processing":           {Error: ReasonAlreadyUsed},
		"accepted-and-expired": {Error: ReasonExpired},
	}
	for token, want := range verdicts {
		t.Run("verdict for "+token, func(t *testing.T) {
			res, err := svc.Validate(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, want.Valid, res.Valid)
			assert.Equal(t, want.Error, res.Error)
			if !want.Valid {
				assert.Empty(t, res.InvitationID)
			}
		})
	}

	t.Run("empty token is an input error", func(t *testing.T) {
		_, err := svc.Validate(ctx, "   ")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("lookup never writes", func(t *testing.T) {
		_, err := svc.Validate(ctx, "valid")
		require.NoError(t, err)
		inv, err := repo.FindInvitationByID(ctx, valid.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InviteStatusSent, inv.Status)
	})

	t.Run("store failure is unexpected", func(t *testing.T) {
		_, err := NewLookupService(failingFinder{}, nil).Validate(ctx, "valid")
		assert.ErrorIs(t, err, ErrUnexpected)
	})
}

func TestKind(t *testing.T) {
	assert.Equal(t, "success", Kind(nil))
	assert.Equal(t, "email_mismatch", Kind(ErrEmailMismatch))
	assert.Equal(t, "already_used", Kind(ErrAlreadyUsed))
	assert.Equal(t, "unexpected", Kind(errors.New("boom")))
}
