package model

import "time"

// Role describes access level of an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered renter or administrator.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	Email        string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the authenticated caller.
type Identity struct {
	UserID int64
	Role   Role
}

// Party maps caller role onto negotiation side.
func (i Identity) Party() Party {
	if i.Role == RoleAdmin {
		return PartyAdmin
	}
	return PartyUser
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
