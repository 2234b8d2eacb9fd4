package mcp

import (
	"context"

	"duplocloud-mcp/internal/audit"
	"duplocloud-mcp/internal/cache"
	"duplocloud-mcp/internal/config"
	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/metrics"
	"duplocloud-mcp/internal/policy"
	"duplocloud-mcp/internal/redact"
)

type ToolSafety string

const (
	SafetyReadOnly    ToolSafety = "read_only"
	SafetyWrite       ToolSafety = "write"
	SafetyRiskyWrite  ToolSafety = "risky_write"
	SafetyDestructive ToolSafety = "destructive"
)

type ToolHandler func(ctx context.Context, req ToolRequest) (ToolResult, error)

type ToolSpec struct {
	Name        string
	Description string
	ToolsetID   string
	InputSchema map[string]any
	Safety      ToolSafety
	Handler     ToolHandler
}

type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolRequest struct {
	Arguments map[string]any
	User      policy.User
	Context   ToolContext
}

// ToolResult is what a handler hands back before normalization. Data is
// serialized as described in Normalize.
type ToolResult struct {
	Data     any
	Metadata ToolMetadata
}

type ToolMetadata struct {
	Tenant    string   `json:"tenant,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

type ToolContext struct {
	Config   *config.Config
	Duplo    *duplo.Provider
	Policy   *policy.Authorizer
	Redactor *redact.Redactor
	Audit    *audit.Logger
	Cache    *cache.Store
	Metrics  *metrics.Recorder
	Invoker  *ToolInvoker
	Registry Registry
}

type ToolsetContext = ToolContext
