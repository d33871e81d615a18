package domain

import (
	"time"
)

// UserStatus tracks where an account is in the approval workflow.
type UserStatus string

// Define constants for statuses
const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRejected UserStatus = "rejected"
)

// User is the local profile mapped from a registered identity.
// Only approved profiles are treated as authenticated.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"` // Should be unique
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose this via JSON
	Status       UserStatus `json:"status"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"createdAt"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
}

// IsApproved reports whether the profile may log in.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s UserStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
