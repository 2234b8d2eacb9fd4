package mcp

import (
	"errors"
	"fmt"
	"net/http"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/policy"
)

// LoadResource resolves the shared client and a handle for kind. A non-empty
// tenantID is checked against the tenant policy first.
func (t ToolContext) LoadResource(user policy.User, kind duplo.Kind, tenantID string) (duplo.Resource, error) {
	if tenantID != "" && t.Policy != nil {
		if err := t.Policy.CheckTenant(user, tenantID); err != nil {
			if errors.Is(err, policy.ErrTenantNotAllowed) {
				return nil, duplo.NewError(fmt.Sprintf("Tenant '%s' is not allowed by policy", tenantID), http.StatusForbidden)
			}
			return nil, err
		}
	}
	if t.Duplo == nil {
		return nil, errors.New("duplo client provider not configured")
	}
	client, err := t.Duplo.Client()
	if err != nil {
		return nil, err
	}
	return client.Load(kind, tenantID)
}

// LoadVerb loads a handle for kind and returns it as the verb interface T.
func LoadVerb[T any](req ToolRequest, kind duplo.Kind, tenantID string) (T, error) {
	res, err := req.Context.LoadResource(req.User, kind, tenantID)
	if err != nil {
		var zero T
		return zero, err
	}
	return duplo.As[T](res)
}
