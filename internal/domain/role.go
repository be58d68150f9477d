package domain

import "fmt"

// Role categorizes marketplace accounts. The set is closed: tokens and
// policy tables only ever carry one of the four values below, and anything
// else must surface as ErrUnknownRole rather than fall through.
type Role string

const (
	RoleVehicleOwner Role = "VEHICLE_OWNER"
	RoleRepairer     Role = "REPAIRER"
	RoleSeller       Role = "SELLER"
	RoleAdmin        Role = "ADMIN"
)

// Roles lists every valid role.
var Roles = []Role{RoleVehicleOwner, RoleRepairer, RoleSeller, RoleAdmin}

// ErrUnknownRole reports a role string outside the closed set.
type ErrUnknownRole struct {
	Value string
}

func (e *ErrUnknownRole) Error() string {
	return fmt.Sprintf("unknown role %q", e.Value)
}

// ParseRole maps a raw string onto the closed role set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleVehicleOwner, RoleRepairer, RoleSeller, RoleAdmin:
		return Role(raw), nil
	}
	return "", &ErrUnknownRole{Value: raw}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
