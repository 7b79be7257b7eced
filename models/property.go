// models/property.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PropertyTable = "properties"
const TenantPropertyTable = "tenant_properties"

type Property struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	OwnerID   string    `gorm:"size:64;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TenantProperty is an access grant: the tenant may access the property.
// One row per (user, property); grants are never updated here.
type TenantProperty struct {
	ID           string    `gorm:"size:64;primaryKey" json:"id"`
	TenantUserID string    `gorm:"size:64;not null;uniqueIndex:idx_tenant_property" json:"tenantUserId"`
	PropertyID   string    `gorm:"size:64;not null;uniqueIndex:idx_tenant_property;index" json:"propertyId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Property) TableName() string       { return PropertyTable }
func (TenantProperty) TableName() string { return TenantPropertyTable }

func (p *Property) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (tp *TenantProperty) BeforeCreate(*gorm.DB) error {
	if tp.ID == "" {
		tp.ID = uuid.NewString()
	}
	return nil
}
