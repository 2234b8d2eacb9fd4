package policy

import (
	"errors"
	"strings"
)

var (
	ErrToolDenied       = errors.New("tool denied by policy")
	ErrTenantNotAllowed = errors.New("tenant not allowed by policy")
)

type User struct {
	ID             string
	AllowedTenants []string
}

// Authorizer applies the [policy] section of the config. An empty tenant list
// allows every tenant.
type Authorizer struct {
	allowedTenants []string
	deniedTools    map[string]struct{}
}

func NewAuthorizer(allowedTenants, deniedTools []string) *Authorizer {
	denied := map[string]struct{}{}
	for _, name := range deniedTools {
		if name = strings.TrimSpace(name); name != "" {
			denied[name] = struct{}{}
		}
	}
	var tenants []string
	for _, tenant := range allowedTenants {
		if tenant = strings.TrimSpace(tenant); tenant != "" {
			tenants = append(tenants, tenant)
		}
	}
	return &Authorizer{allowedTenants: tenants, deniedTools: denied}
}

// LocalUser is the identity every call runs as. The portal token comes from
// the environment, so callers carry no credentials of their own.
func (a *Authorizer) LocalUser() User {
	if a == nil {
		return User{ID: "local"}
	}
	return User{ID: "local", AllowedTenants: a.allowedTenants}
}

// AuthorizeTool rejects a tool whose name, or whose toolset id, is listed in
// denied_tools.
func (a *Authorizer) AuthorizeTool(toolsetID, toolName string) error {
	if a == nil {
		return nil
	}
	if _, denied := a.deniedTools[toolName]; denied {
		return ErrToolDenied
	}
	if _, denied := a.deniedTools[toolsetID]; denied && toolsetID != "" {
		return ErrToolDenied
	}
	return nil
}

func (a *Authorizer) CheckTenant(user User, tenantID string) error {
	if len(user.AllowedTenants) == 0 {
		return nil
	}
	for _, allowed := range user.AllowedTenants {
		if strings.EqualFold(allowed, tenantID) {
			return nil
		}
	}
	return ErrTenantNotAllowed
}
