package models

// Roles a user account can hold. New accounts always start as RoleUser.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
