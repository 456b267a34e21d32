package application

import (
	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// CacheInvalidator is the slice of the cache the gate needs.
type CacheInvalidator interface {
	Invalidate()
}

// Secrets holds the configured access keys, one per role.
type Secrets struct {
	Admin     string
	Secretary string
	Authority string
}

// AccessGate maps an entered access key to a role. It is a convenience gate,
// not a security boundary: matching is plain case-sensitive string equality
// against the configured keys.
type AccessGate struct {
	secrets Secrets
	cache   CacheInvalidator
}

// NewAccessGate creates a gate over the given secrets and cache.
func NewAccessGate(secrets Secrets, cache CacheInvalidator) *AccessGate {
	return &AccessGate{secrets: secrets, cache: cache}
}

// Enter handles a key entry attempt: every non-empty attempt invalidates the
// table cache before resolution, so a role switch never sees stale data.
// Resolution of an already-stored key goes through Resolve instead and leaves
// the cache alone.
func (g *AccessGate) Enter(secret string) model.Role {
	if secret != "" {
		g.cache.Invalidate()
	}
	return g.Resolve(secret)
}

// Resolve maps a key to a role with no side effects. The empty string maps
// to RoleNone; any non-empty unmatched key maps to RoleDenied.
func (g *AccessGate) Resolve(secret string) model.Role {
	if secret == "" {
		return model.RoleNone
	}

	switch secret {
	case g.secrets.Admin:
		return model.RoleAdmin
	case g.secrets.Secretary:
		return model.RoleSecretary
	case g.secrets.Authority:
		return model.RoleAuthority
	default:
		return model.RoleDenied
	}
}
