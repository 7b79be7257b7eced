package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvitationPredicates(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("expired only strictly after expires_at", func(t *testing.T) {
		inv := Invitation{ExpiresAt: now}
		assert.False(t, inv.Expired(now))
		assert.True(t, inv.Expired(now.Add(time.Second)))
		assert.False(t, inv.Expired(now.Add(-time.Hour)))
	})

	t.Run("lookup accepts pending and sent", func(t *testing.T) {
		for status, want := range map[InviteStatus]bool{
			InviteStatusPending:    true,
			InviteStatusSent:       true,
			InviteStatusProcessing: false,
			InviteStatusAccepted:   false,
		} {
			inv := Invitation{Status: status}
			assert.Equal(t, want, inv.Lookupable(), status)
		}
	})

	t.Run("accept also allows processing", func(t *testing.T) {
		for status, want := range map[InviteStatus]bool{
			InviteStatusPending:    true,
			InviteStatusSent:       true,
			InviteStatusProcessing: true,
			InviteStatusAccepted:   false,
			InviteStatus("bogus"):  false,
		} {
			inv := Invitation{Status: status}
			assert.Equal(t, want, inv.Acceptable(), status)
		}
	})
}

func TestRoleFor(t *testing.T) {
	r, ok := RoleFor(InviteTypeTenant)
	assert.True(t, ok)
	assert.Equal(t, RoleTenant, r)

	r, ok = RoleFor(InviteTypeOther)
	assert.True(t, ok)
	assert.Equal(t, RoleMember, r)

	_, ok = RoleFor(InviteType("landlord"))
	assert.False(t, ok)
}
