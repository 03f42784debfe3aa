package models

import "time"

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           int64     `json:"UserID"`
	Username     string    `json:"Username"`
	Email        string    `json:"Email"`
	Role         string    `json:"Role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// IsAdmin reports whether the user holds the privileged role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
