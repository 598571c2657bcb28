package models

import (
	"time"
)

type User struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name"`
	Email            string          `json:"email" gorm:"unique"`
	Password         string          `json:"password,omitempty"`
	AvatarURL        string          `json:"avatar_url"`
	RoleID           uint            `json:"role_id"`
	Role             Role            `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	ProvidedServices []Service       `json:"provided_services,omitempty" gorm:"foreignKey:ProviderID"`
	Appointments     []Appointment   `json:"appointments,omitempty" gorm:"foreignKey:ProviderID"`
	Bookings         []Appointment   `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
	Therapies        []ActiveTherapy `json:"therapies,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
