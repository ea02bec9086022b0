package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of actor roles recognised by the workflow.
type Role string

const (
	RolePlanner             Role = "Planner"
	RoleDevelopmentCouncil  Role = "Development_Council"
	RoleBudgetOfficer       Role = "Budget_Officer"
	RoleBACSecretariat      Role = "BAC_Secretariat"
	RoleTechnicalInspector  Role = "Technical_Inspector"
	RoleSystemAdministrator Role = "System_Administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePlanner, RoleDevelopmentCouncil, RoleBudgetOfficer,
		RoleBACSecretariat, RoleTechnicalInspector, RoleSystemAdministrator:
		return true
	}
	return false
}

// User represents a municipal staff account.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"not null" json:"first_name" validate:"required"`
	LastName     string         `gorm:"not null" json:"last_name" validate:"required"`
	Role         Role           `gorm:"type:varchar(32);index;not null" json:"role" validate:"required"`
	Barangay     string         `gorm:"type:varchar(128)" json:"barangay"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
