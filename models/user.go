package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleTenant Role = "tenant"
	RoleMember Role = "member"
)

// inviteRoles must cover every InviteType.
var inviteRoles = map[InviteType]Role{
	InviteTypeTenant: RoleTenant,
	InviteTypeOther:  RoleMember,
}

// RoleFor maps an invite type to the role granted on acceptance.
func RoleFor(t InviteType) (Role, bool) {
	r, ok := inviteRoles[t]
	return r, ok
}

// User is an account known to this service. Username holds the verified
// email issued by the identity provider.
type User struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Username    string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	DisplayName string `gorm:"size:255;not null" json:"displayName"`
	Role        Role   `gorm:"size:20" json:"role,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is what the identity provider knows about a user.
type Identity struct {
	UserID string
	Email  string
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
