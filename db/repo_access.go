package db

import (
	"context"
	"time"

	"Gin_postgres_redis_property_invite/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tx is the set of writes the accept path composes into one transaction.
type Tx interface {
	TransitionInvitation(ctx context.Context, id string, from []models.InviteStatus, to models.InviteStatus, now time.Time) (bool, error)
	GrantAccess(ctx context.Context, userID, propertyID string) error
	SetUserRole(ctx context.Context, userID string, role models.Role) error
}

// WithTx runs fn inside a database transaction. Any error from fn rolls
// everything back.
func (r *Repo) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{DB: tx})
	})
}

// GrantAccess inserts the (tenant, property) relation. An existing grant for
// the same pair is left as is.
func (r *Repo) GrantAccess(ctx context.Context, userID, propertyID string) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TenantProperty{TenantUserID: userID, PropertyID: propertyID}).Error
}

func (r *Repo) ListAccessGrants(ctx context.Context, userID, propertyID string) ([]models.TenantProperty, error) {
	q := r.DB.WithContext(ctx).Model(&models.TenantProperty{}).Order("created_at ASC")
	if userID != "" {
		q = q.Where("tenant_user_id = ?", userID)
	}
	if propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}
	var gs []models.TenantProperty
	if err := q.Find(&gs).Error; err != nil {
		return nil, err
	}
	return gs, nil
}
