package identity

// Role is the closed set of account types. Authorization guards switch on it
// exhaustively instead of comparing loose strings.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated caller. It is passed explicitly into every
// use case, never read from global state.
type Principal struct {
	UserID uint
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDoctor() bool {
	return p.Role == RoleDoctor
}

func (p Principal) IsPatient() bool {
	return p.Role == RolePatient
}
