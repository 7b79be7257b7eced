package db

import (
	"Gin_postgres_redis_property_invite/models"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	return r.DB.WithContext(ctx).Create(u).Error
}

// ResolveIdentity answers "who is this user and what is their verified email".
// A user without an email is treated as unknown.
func (r *Repo) ResolveIdentity(ctx context.Context, userID string) (models.Identity, error) {
	u, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return models.Identity{}, err
	}
	if strings.TrimSpace(u.Username) == "" {
		return models.Identity{}, ErrNotFound
	}
	return models.Identity{UserID: u.ID, Email: u.Username}, nil
}

// SetUserRole fails with ErrNotFound when the user row is gone.
func (r *Repo) SetUserRole(ctx context.Context, userID string, role models.Role) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
