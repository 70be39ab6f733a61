package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account has not been approved")
	ErrInvalidStatus      = errors.New("invalid account status")
)

// Status tracks the admin-approval state of an account. New signups start
// as pending and cannot use the portal until an admin approves them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// User represents an account in the school portal.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string // display role, e.g. "Professor", "Coordenador"
	Status       Status
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Status   Status
	Page     int
	PageSize int
}
