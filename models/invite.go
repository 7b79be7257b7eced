package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const InvitationTable = "property_invitations"

type InviteType string

const (
	InviteTypeTenant InviteType = "tenant"
	InviteTypeOther  InviteType = "other"
)

type InviteStatus string

const (
	InviteStatusPending    InviteStatus = "pending"
	InviteStatusSent       InviteStatus = "sent"
	InviteStatusProcessing InviteStatus = "processing"
	InviteStatusAccepted   InviteStatus = "accepted"
)

// AcceptableStatuses is the status set an accept may transition out of.
var AcceptableStatuses = []InviteStatus{
	InviteStatusPending,
	InviteStatusSent,
	InviteStatusProcessing,
}

// Invitation is created elsewhere; this service only moves Status to accepted.
type Invitation struct {
	ID         string       `gorm:"size:64;primaryKey" json:"id"`
	PropertyID string       `gorm:"size:64;index;not null" json:"propertyId"`
	InviteType InviteType   `gorm:"size:20;not null" json:"inviteType"`
	Email      string       `gorm:"index;size:255;not null" json:"email"`
	Token      string       `gorm:"uniqueIndex;size:128;not null" json:"-"`
	Status     InviteStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	ExpiresAt  time.Time    `gorm:"index;not null" json:"expiresAt"`
	CreatedBy  string       `gorm:"size:64" json:"createdBy"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func (Invitation) TableName() string { return InvitationTable }

func (inv *Invitation) BeforeCreate(*gorm.DB) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether now is past the expiry. Nothing ever stores "expired".
func (inv *Invitation) Expired(now time.Time) bool {
	return now.After(inv.ExpiresAt)
}

// Lookupable reports whether a link is still usable, which holds only while
// the invitation is pending or sent.
func (inv *Invitation) Lookupable() bool {
	return inv.Status == InviteStatusPending || inv.Status == InviteStatusSent
}

func (inv *Invitation) Acceptable() bool {
	for _, s := range AcceptableStatuses {
		if inv.Status == s {
			return true
		}
	}
	return false
}

// InvitationDetails is an invitation joined with its property and inviter names.
type InvitationDetails struct {
	Invitation
	PropertyName string
	InviterName  string
}
