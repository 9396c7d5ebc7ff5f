package identity

import (
	"strings"

	"github.com/towntreasure/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents what side of the marketplace the user is acting on.
// A single account can switch between the two at any time.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// Toggle returns the opposite role
func (r Role) Toggle() Role {
	if r == RoleBuyer {
		return RoleSeller
	}
	return RoleBuyer
}

// User represents a marketplace account
type User struct {
	shared.BaseEntity
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName  string `gorm:"type:varchar(200)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'buyer'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user account. The password is stored as a
// bcrypt hash even though the current auth service is a mock that never
// verifies it; a real credential check can slot in without a migration.
func NewUser(email, displayName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = email[:strings.Index(email+"@", "@")]
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         RoleBuyer,
	}, nil
}

// SwitchRole toggles the user between buyer and seller
func (u *User) SwitchRole() {
	u.Role = u.Role.Toggle()
	u.Touch()
}
