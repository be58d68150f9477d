package auth

import (
	"strings"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// Well-known navigation paths consumed by the route guard.
const (
	LoginPath         = "/login"
	HomePath          = "/"
	DashboardRootPath = "/dashboard"
)

// RolePolicy is the static role → path-prefix table shared by the route
// guard and the handler wrapper. It is built once at startup and read-only
// afterwards, so lookups need no locking.
type RolePolicy struct {
	protected  []string
	excluded   []string
	exclusive  map[domain.Role][]string
	dashboards map[domain.Role]string
}

// DefaultRolePolicy returns the marketplace navigation policy.
//
// Role-exclusive prefixes must not overlap between roles; an overlap is a
// configuration bug, not a runtime case.
func DefaultRolePolicy() *RolePolicy {
	return &RolePolicy{
		protected: []string{
			"/dashboard",
			"/profile",
			"/settings",
			"/orders",
			"/vehicle-owner",
			"/repairer",
			"/seller",
			"/admin",
		},
		excluded: []string{
			"/api",
			"/static",
			"/assets",
			"/favicon.ico",
		},
		exclusive: map[domain.Role][]string{
			domain.RoleVehicleOwner: {"/vehicle-owner"},
			domain.RoleRepairer:     {"/repairer"},
			domain.RoleSeller:       {"/seller"},
			domain.RoleAdmin:        {"/admin"},
		},
		dashboards: map[domain.Role]string{
			domain.RoleVehicleOwner: "/vehicle-owner/dashboard",
			domain.RoleRepairer:     "/repairer/dashboard",
			domain.RoleSeller:       "/seller/dashboard",
			domain.RoleAdmin:        "/admin/dashboard",
		},
	}
}

// Excluded reports whether the path is outside guard interception entirely
// (static assets, the API prefix, favicon). API routes self-protect via the
// handler wrapper.
func (p *RolePolicy) Excluded(path string) bool {
	for _, prefix := range p.excluded {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Protected reports whether the path requires a session at all.
func (p *RolePolicy) Protected(path string) bool {
	for _, prefix := range p.protected {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AllowedPrefixes returns the prefixes exclusive to the given role. Unknown
// roles get an empty set.
func (p *RolePolicy) AllowedPrefixes(role domain.Role) []string {
	return p.exclusive[role]
}

// ExclusiveOwner returns the role owning the exclusive prefix the path falls
// under, if any.
func (p *RolePolicy) ExclusiveOwner(path string) (domain.Role, bool) {
	for role, prefixes := range p.exclusive {
		for _, prefix := range prefixes {
			if hasPathPrefix(path, prefix) {
				return role, true
			}
		}
	}
	return "", false
}

// OwnerDashboard maps a role to its canonical dashboard. Unknown or absent
// roles fall back to home, the most restrictive redirect target.
func (p *RolePolicy) OwnerDashboard(role domain.Role) string {
	if path, ok := p.dashboards[role]; ok {
		return path
	}
	return HomePath
}

// hasPathPrefix matches on whole path segments so that /sellers does not
// fall under /seller.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) {
		return true
	}
	return path[len(prefix)] == '/'
}
