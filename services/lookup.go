package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Gin_postgres_redis_property_invite/db"
	"Gin_postgres_redis_property_invite/models"
)

// Verdict reasons carried in LookupResult.Error.
const (
	ReasonNotFound    = "invitation_not_found"
	ReasonExpired     = "expired"
	ReasonAlreadyUsed = "already_used"
)

type TokenFinder interface {
	FindInvitationByToken(ctx context.Context, token string) (*models.InvitationDetails, error)
}

// LookupResult folds validity into the payload: an invalid link is data,
// not a failure.
type LookupResult struct {
	Valid        bool              `json:"valid"`
	Error        string            `json:"error,omitempty"`
	InvitationID string            `json:"invitationId,omitempty"`
	PropertyID   string            `json:"propertyId,omitempty"`
	PropertyName string            `json:"propertyName,omitempty"`
	InviteType   models.InviteType `json:"inviteType,omitempty"`
	InviterID    string            `json:"inviterId,omitempty"`
	InviterName  string            `json:"inviterName,omitempty"`
	ExpiresAt    *time.Time        `json:"expiresAt,omitempty"`
}

type LookupService struct {
	store TokenFinder
	now   func() time.Time
	log   *slog.Logger
}

func NewLookupService(store TokenFinder, log *slog.Logger) *LookupService {
	if log == nil {
		log = slog.Default()
	}
	return &LookupService{store: store, now: time.Now, log: log}
}

// WithClock replaces the time source; used by tests.
func (s *LookupService) WithClock(now func() time.Time) *LookupService {
	s.now = now
	return s
}

// Validate resolves a token to a verdict. Only an empty token or a store
// failure is returned as an error.
func (s *LookupService) Validate(ctx context.Context, token string) (LookupResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return LookupResult{}, ErrMissingFields
	}

	inv, err := s.store.FindInvitationByToken(ctx, token)
	if errors.Is(err, db.ErrNotFound) {
		return LookupResult{Error: ReasonNotFound}, nil
	}
	if err != nil {
		s.log.ErrorContext(ctx, "invitation lookup failed", "error", err)
		return LookupResult{}, fmt.Errorf("%w: find invitation by token: %w", ErrUnexpected, err)
	}

	if inv.Expired(s.now()) {
		return LookupResult{Error: ReasonExpired}, nil
	}
	if !inv.Lookupable() {
		return LookupResult{Error: ReasonAlreadyUsed}, nil
	}

	expires := inv.ExpiresAt
	return LookupResult{
		Valid:        true,
		InvitationID: inv.ID,
		PropertyID:   inv.PropertyID,
		PropertyName: inv.PropertyName,
		InviteType:   inv.InviteType,
		InviterID:    inv.CreatedBy,
		InviterName:  inv.InviterName,
		ExpiresAt:    &expires,
	}, nil
}
