package db

import (
	"context"
	"strings"
	"time"

	"Gin_postgres_redis_property_invite/models"
)

func (r *Repo) CreateProperty(ctx context.Context, p *models.Property) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repo) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	inv.Email = strings.ToLower(strings.TrimSpace(inv.Email))
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	if inv.Status == "" {
		inv.Status = models.InviteStatusPending
	}
	return r.DB.WithContext(ctx).Create(inv).Error
}

// FindInvitationByToken joins the property name and the inviter's display name.
func (r *Repo) FindInvitationByToken(ctx context.Context, token string) (*models.InvitationDetails, error) {
	var row models.InvitationDetails
	err := r.DB.WithContext(ctx).
		Table(models.InvitationTable+" i").
		Select(`
			i.*,
			COALESCE(p.name, '')         AS property_name,
			COALESCE(u.display_name, '') AS inviter_name
		`).
		Joins("LEFT JOIN "+models.PropertyTable+" p ON p.id = i.property_id").
		Joins("LEFT JOIN users u ON u.id = i.created_by").
		Where("i.token = ?", token).
		Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (r *Repo) FindInvitationByID(ctx context.Context, id string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.DB.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// TransitionInvitation is a single compare-and-swap: the row moves to `to`
// only if its status is still in `from` and it has not expired at now
// (expires_at itself still counts as live).
// It reports whether a row was changed.
func (r *Repo) TransitionInvitation(ctx context.Context, id string, from []models.InviteStatus, to models.InviteStatus, now time.Time) (bool, error) {
	now = now.UTC()
	res := r.DB.WithContext(ctx).Model(&models.Invitation{}).
		Where("id = ? AND status IN ? AND expires_at >= ?", id, from, now).
		Updates(map[string]any{
			"status":     to,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
