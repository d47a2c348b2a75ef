// internal/models/user.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleAccountant Role = "accountant"
	RoleAdmin      Role = "admin"
)

// ParseRole accepts the english role names and the portuguese aliases used by the
// registration form. Admin is never accepted here.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "cliente":
		return RoleClient, true
	case "accountant", "contador":
		return RoleAccountant, true
	}
	return "", false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Email    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:varchar(200);not null" json:"-"`
	Role     Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Photo    string    `gorm:"type:varchar(300)" json:"photo"`
	Phone    string    `gorm:"type:varchar(20)" json:"phone"`
	Bio      string    `gorm:"type:text" json:"bio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

func (u *User) IsAccountant() bool { return u.Role == RoleAccountant }
