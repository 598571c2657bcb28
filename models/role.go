package models

import (
	"time"

	"gorm.io/gorm"
)

// Built-in role names seeded by db.Migrate. Role access on routes is
// checked against these via middleware.RequireRole.
const (
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
	RoleOrganiser = "organiser"
)

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Permissions []Permission   `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}
