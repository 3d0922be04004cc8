package common

// PermissionLevel represents the permission level for a command.
type PermissionLevel uint

// Command permission level.
const (
	PermissionDefault PermissionLevel = iota
	PermissionDeveloper
)

// Allows reports whether a user with level p may run a command requiring level required.
func (p PermissionLevel) Allows(required PermissionLevel) bool {
	return p >= required
}

func (p PermissionLevel) String() string {
	switch p {
	case PermissionDefault:
		return "default"
	case PermissionDeveloper:
		return "developer"
	default:
		return "unknown"
	}
}
