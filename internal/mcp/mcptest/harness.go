// Package mcptest wires a toolset to an in-memory duplo client so tools can
// be exercised end to end through the invoker.
package mcptest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"duplocloud-mcp/internal/cache"
	"duplocloud-mcp/internal/config"
	"duplocloud-mcp/internal/duplo/duplotest"
	"duplocloud-mcp/internal/mcp"
	"duplocloud-mcp/internal/policy"
	"duplocloud-mcp/internal/redact"
)

type Harness struct {
	Fake     *duplotest.Client
	Config   *config.Config
	Registry *mcp.ToolRegistry
	Invoker  *mcp.ToolInvoker
	policy   *policy.Authorizer
}

// New registers toolset against a fresh registry. Options adjust the
// default config before anything is built.
func New(t testing.TB, toolset mcp.Toolset, options ...func(*config.Config)) *Harness {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	fake := duplotest.NewClient()
	reg := mcp.NewRegistry(&cfg)
	authorizer := policy.NewAuthorizer(cfg.Policy.AllowedTenants, cfg.Policy.DeniedTools)
	toolCtx := mcp.ToolContext{
		Config:   &cfg,
		Duplo:    fake.Provider(),
		Policy:   authorizer,
		Redactor: redact.New(),
		Cache:    cache.NewStore(),
		Registry: reg,
	}
	toolCtx.Invoker = mcp.NewToolInvoker(reg, toolCtx)
	require.NoError(t, toolset.Init(toolCtx))
	require.NoError(t, toolset.Register(reg))
	return &Harness{Fake: fake, Config: &cfg, Registry: reg, Invoker: toolCtx.Invoker, policy: authorizer}
}

// Call invokes a tool as the local user and returns the normalized text.
func (h *Harness) Call(tool string, args map[string]any) (string, bool) {
	return h.Invoker.CallText(context.Background(), h.policy.LocalUser(), tool, args)
}
