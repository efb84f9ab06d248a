package auth

// Staff and admin accounts manage the facility; parent accounts are
// wired by the route layer to read-only views of their own children.
const (
	RoleAdmin  = "ADMIN"
	RoleStaff  = "STAFF"
	RoleParent = "PARENT"
)

// User is the domain entity.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleParent:
		return true
	}
	return false
}
