// Package sdk exposes the stable surface for toolsets built outside this
// repository: registration, tool specs, argument validation and resource
// loading.
package sdk

import (
	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
	"duplocloud-mcp/internal/policy"
	"duplocloud-mcp/internal/redact"
)

// Core toolset interfaces and types.
type Toolset = mcp.Toolset

type ToolsetContext = mcp.ToolsetContext

type ToolSpec = mcp.ToolSpec

type ToolHandler = mcp.ToolHandler

type ToolSafety = mcp.ToolSafety

type ToolRequest = mcp.ToolRequest

type ToolResult = mcp.ToolResult

type ToolMetadata = mcp.ToolMetadata

type Registry = mcp.Registry

const (
	SafetyReadOnly    = mcp.SafetyReadOnly
	SafetyWrite       = mcp.SafetyWrite
	SafetyRiskyWrite  = mcp.SafetyRiskyWrite
	SafetyDestructive = mcp.SafetyDestructive
)

// Toolset registration for plugin discovery.
func RegisterToolset(id string, factory mcp.ToolsetFactory) error {
	return mcp.RegisterToolset(id, factory)
}

func MustRegisterToolset(id string, factory mcp.ToolsetFactory) {
	mcp.MustRegisterToolset(id, factory)
}

func RegisteredToolsets() []string {
	return mcp.RegisteredToolsets()
}

type ToolInvoker = mcp.ToolInvoker

type Redactor = redact.Redactor

// Argument validation.
type ValidationError = mcp.ValidationError

func RequireString(value, label string) (string, error) {
	return mcp.RequireString(value, label)
}

func RequireArg(args map[string]any, key, label string) (string, error) {
	return mcp.RequireArg(args, key, label)
}

func RequireTenant(args map[string]any) (string, error) {
	return mcp.RequireTenant(args)
}

// DuploCloud resources.
type Kind = duplo.Kind

type Resource = duplo.Resource

type Error = duplo.Error

const (
	KindTenant  = duplo.KindTenant
	KindHosts   = duplo.KindHosts
	KindService = duplo.KindService
	KindRDS     = duplo.KindRDS
	KindS3      = duplo.KindS3
	KindECS     = duplo.KindECS
)

func NewError(message string, code int) *Error {
	return duplo.NewError(message, code)
}

// LoadVerb loads the tenant-scoped handle for kind as verb interface T,
// applying the tenant policy of the calling user.
func LoadVerb[T any](req ToolRequest, kind Kind, tenantID string) (T, error) {
	return mcp.LoadVerb[T](req, kind, tenantID)
}

// Policy helpers.
type User = policy.User
