package domain

// Role constants define the allowed account roles. Only RoleAdmin is privileged.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRoles returns the set of valid account roles.
func ValidRoles() []string {
	return []string{RoleAdmin, RoleEditor}
}

// IsValidRole checks whether the given role string is a valid account role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
