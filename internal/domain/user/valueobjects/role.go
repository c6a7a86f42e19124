package valueobjects

import "fmt"

type Role string

const (
	RoleClient   Role = "Client"
	RoleUser     Role = "User"
	RoleHelpDesk Role = "HelpDesk"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

var validRoles = map[Role]bool{
	RoleClient:   true,
	RoleUser:     true,
	RoleHelpDesk: true,
	RoleManager:  true,
	RoleAdmin:    true,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanBroadcast reports whether the role may send notifications to other users.
func (r Role) CanBroadcast() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
