package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. It is assigned at registration and
// never changed through this API.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is an account. Accounts with role "user" double as the doctor directory:
// patients reference them via DoctorID.
type User struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	PasswordSalt   string    `json:"-"`
	Role           Role      `gorm:"type:varchar(16);not null;default:user" json:"role"`
	FailedAttempts int       `json:"-"`
	LockedUntil    *int64    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Restrict deleting a user that patients still reference as their doctor.
	Patients []Patient `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"-"`
}

// BeforeCreate assigns an opaque ID when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Doctor is the projection of a user embedded in patient responses and the
// doctor directory: just id, name, and email.
type Doctor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName maps the projection onto the users table so it can be preloaded
// and queried directly.
func (Doctor) TableName() string {
	return "users"
}
