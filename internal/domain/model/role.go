package model

// Role is the access level derived from the entered access key.
type Role string

const (
	// RoleNone means no key has been entered yet.
	RoleNone Role = "none"
	// RoleAdmin may replace the dataset but sees no schedule board.
	RoleAdmin Role = "admin"
	// RoleSecretary sees the full board including party contact data.
	RoleSecretary Role = "secretary"
	// RoleAuthority sees the board with party contact data suppressed.
	RoleAuthority Role = "authority"
	// RoleDenied is any non-empty key that matches no configured secret.
	RoleDenied Role = "denied"
)

// CanUpload reports whether the role is allowed to replace the dataset.
func (r Role) CanUpload() bool {
	return r == RoleAdmin
}

// SeesParties reports whether party name, phone, and notification state
// may be rendered for this role.
func (r Role) SeesParties() bool {
	return r == RoleSecretary
}

// SeesBoard reports whether the schedule board is rendered at all.
func (r Role) SeesBoard() bool {
	return r == RoleSecretary || r == RoleAuthority
}
