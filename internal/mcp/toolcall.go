package mcp

import (
	"context"
	"errors"

	"duplocloud-mcp/internal/policy"
)

// CallTool lets one tool invoke another through the shared invoker.
func (t ToolContext) CallTool(ctx context.Context, user policy.User, toolName string, args map[string]any) (ToolResult, error) {
	if t.Invoker == nil {
		return ToolResult{}, errors.New("tool invoker not available")
	}
	return t.Invoker.Call(ctx, user, toolName, args)
}
