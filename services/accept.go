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

type AcceptStore interface {
	FindInvitationByID(ctx context.Context, id string) (*models.Invitation, error)
	WithTx(ctx context.Context, fn func(tx db.Tx) error) error
}

// IdentityProvider is the authentication side's answer to "who is this user".
type IdentityProvider interface {
	ResolveIdentity(ctx context.Context, userID string) (models.Identity, error)
}

type AcceptResult struct {
	PropertyID string      `json:"propertyId"`
	Role       models.Role `json:"role"`
}

type AcceptanceProcessor struct {
	store      AcceptStore
	identities IdentityProvider
	now        func() time.Time
	log        *slog.Logger
}

func NewAcceptanceProcessor(store AcceptStore, identities IdentityProvider, log *slog.Logger) *AcceptanceProcessor {
	if log == nil {
		log = slog.Default()
	}
	return &AcceptanceProcessor{store: store, identities: identities, now: time.Now, log: log}
}

func (p *AcceptanceProcessor) WithClock(now func() time.Time) *AcceptanceProcessor {
	p.now = now
	return p
}

// Accept redeems an invitation for userID. Checks run in a fixed order and
// the first failure wins; nothing is written unless all of them pass.
// The status transition is a compare-and-swap inside the same transaction
// as the grant and the role update, so of two racing calls only one can
// commit.
func (p *AcceptanceProcessor) Accept(ctx context.Context, invitationID, userID string) (AcceptResult, error) {
	invitationID, userID = strings.TrimSpace(invitationID), strings.TrimSpace(userID)
	if invitationID == "" || userID == "" {
		return AcceptResult{}, ErrMissingFields
	}

	ident, err := p.identities.ResolveIdentity(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return AcceptResult{}, ErrUserNotFound
	}
	if err != nil {
		return AcceptResult{}, p.unexpected(ctx, "resolve identity", err)
	}
	if strings.TrimSpace(ident.Email) == "" {
		return AcceptResult{}, ErrUserNotFound
	}

	inv, err := p.store.FindInvitationByID(ctx, invitationID)
	if errors.Is(err, db.ErrNotFound) {
		return AcceptResult{}, ErrInvitationNotFound
	}
	if err != nil {
		return AcceptResult{}, p.unexpected(ctx, "find invitation", err)
	}

	if !sameEmail(inv.Email, ident.Email) {
		p.log.InfoContext(ctx, "invitation email mismatch", "invitationID", inv.ID, "userID", userID)
		return AcceptResult{}, ErrEmailMismatch
	}
	if !inv.Acceptable() {
		return AcceptResult{}, ErrAlreadyUsed
	}
	role, ok := models.RoleFor(inv.InviteType)
	if !ok {
		p.log.WarnContext(ctx, "invitation has unknown invite type", "invitationID", inv.ID, "inviteType", inv.InviteType)
		return AcceptResult{}, ErrAlreadyUsed
	}
	if inv.Expired(p.now()) {
		return AcceptResult{}, ErrInvitationExpired
	}

	err = p.store.WithTx(ctx, func(tx db.Tx) error {
		now := p.now()
		swapped, err := tx.TransitionInvitation(ctx, inv.ID, models.AcceptableStatuses, models.InviteStatusAccepted, now)
		if err != nil {
			return fmt.Errorf("transition invitation: %w", err)
		}
		if !swapped {
			// the row may have expired since it was read
			if inv.Expired(now) {
				return ErrInvitationExpired
			}
			return ErrAlreadyUsed
		}
		if err := tx.GrantAccess(ctx, userID, inv.PropertyID); err != nil {
			return fmt.Errorf("grant access: %w", err)
		}
		if err := tx.SetUserRole(ctx, userID, role); err != nil {
			return fmt.Errorf("set user role: %w", err)
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrInvitationExpired):
		return AcceptResult{}, ErrInvitationExpired
	case errors.Is(err, ErrAlreadyUsed):
		p.log.DebugContext(ctx, "invitation lost the accept race", "invitationID", inv.ID, "userID", userID)
		return AcceptResult{}, ErrAlreadyUsed
	case errors.Is(err, db.ErrNotFound):
		// user row vanished between the identity check and the role write
		return AcceptResult{}, ErrUserNotFound
	case err != nil:
		return AcceptResult{}, p.unexpected(ctx, "accept transaction", err)
	}

	p.log.InfoContext(ctx, "invitation accepted",
		"invitationID", inv.ID, "userID", userID, "propertyID", inv.PropertyID, "role", role)
	return AcceptResult{PropertyID: inv.PropertyID, Role: role}, nil
}

func (p *AcceptanceProcessor) unexpected(ctx context.Context, op string, err error) error {
	p.log.ErrorContext(ctx, "invitation accept failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrUnexpected, op, err)
}

// Emails compare case-insensitively, ignoring surrounding space.
func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
