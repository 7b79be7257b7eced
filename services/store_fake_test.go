package services

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"Gin_postgres_redis_property_invite/db"
	"Gin_postgres_redis_property_invite/models"
)

// memStore is an in-memory store whose reads may return stale snapshots,
// so the compare-and-swap inside the transaction is the only guard.
type memStore struct {
	mu          sync.Mutex
	invitations map[string]models.Invitation
	grants      map[[2]string]bool
	roles       map[string]models.Role

	stale   map[string]models.Invitation
	findErr error
	txErr   error
	roleErr error
}

func newMemStore(invs ...models.Invitation) *memStore {
	s := &memStore{
		invitations: map[string]models.Invitation{},
		grants:      map[[2]string]bool{},
		roles:       map[string]models.Role{},
		stale:       map[string]models.Invitation{},
	}
	for _, inv := range invs {
		s.invitations[inv.ID] = inv
	}
	return s
}

func (s *memStore) FindInvitationByID(_ context.Context, id string) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	if inv, ok := s.stale[id]; ok {
		return &inv, nil
	}
	inv, ok := s.invitations[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &inv, nil
}

func (s *memStore) WithTx(_ context.Context, fn func(tx db.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.txErr != nil {
		return s.txErr
	}
	tx := &memTx{
		invitations: maps.Clone(s.invitations),
		grants:      maps.Clone(s.grants),
		roles:       maps.Clone(s.roles),
		roleErr:     s.roleErr,
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.invitations, s.grants, s.roles = tx.invitations, tx.grants, tx.roles
	return nil
}

func (s *memStore) grantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}

func (s *memStore) status(id string) models.InviteStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invitations[id].Status
}

type memTx struct {
	invitations map[string]models.Invitation
	grants      map[[2]string]bool
	roles       map[string]models.Role
	roleErr     error
}

func (t *memTx) TransitionInvitation(_ context.Context, id string, from []models.InviteStatus, to models.InviteStatus, now time.Time) (bool, error) {
	inv, ok := t.invitations[id]
	if !ok || now.After(inv.ExpiresAt) {
		return false, nil
	}
	for _, st := range from {
		if inv.Status == st {
			inv.Status = to
			t.invitations[id] = inv
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) GrantAccess(_ context.Context, userID, propertyID string) error {
	t.grants[[2]string{userID, propertyID}] = true
	return nil
}

func (t *memTx) SetUserRole(_ context.Context, userID string, role models.Role) error {
	if t.roleErr != nil {
		return t.roleErr
	}
	t.roles[userID] = role
	return nil
}

type fakeIdentities map[string]string

func (f fakeIdentities) ResolveIdentity(_ context.Context, userID string) (models.Identity, error) {
	email, ok := f[userID]
	if !ok {
		return models.Identity{}, db.ErrNotFound
	}
	return models.Identity{UserID: userID, Email: email}, nil
}

type brokenIdentities struct{}

func (brokenIdentities) ResolveIdentity(context.Context, string) (models.Identity, error) {
	return models.Identity{}, errors.New("identity provider unreachable")
}
