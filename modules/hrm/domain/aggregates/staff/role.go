package staff

import "fmt"

// Role is the closed set of workforce roles. Authorization decisions key off
// this value, never off free-form strings.
type Role string

const (
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
)

func NewRole(v string) (Role, error) {
	role := Role(v)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %q", v)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleHR, RoleManager, RoleEmployee, RoleIntern:
		return true
	}
	return false
}

// IsWorker reports whether accounts with this role may be supervised,
// receive tasks, and be deleted through the workforce paths.
func (r Role) IsWorker() bool {
	return r == RoleEmployee || r == RoleIntern
}
