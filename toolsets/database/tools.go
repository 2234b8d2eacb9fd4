package database

import (
	"context"
	"net/http"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

const defaultMasterUsername = "master"

func (t *Toolset) handleList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.Lister](req, duplo.KindRDS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := lister.List(ctx)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, ""), nil
}

func (t *Toolset) handleGet(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := databaseArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := mcp.LoadVerb[duplo.Finder](req, duplo.KindRDS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := finder.Find(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func (t *Toolset) handleCreate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	identifier, err := mcp.RequireArg(req.Arguments, "identifier", "Database identifier")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	engine, err := mcp.RequireArg(req.Arguments, "engine", "Database engine")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	size, err := mcp.RequireArg(req.Arguments, "size", "Instance size")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	masterUsername, ok := mcp.OptionalString(req.Arguments, "master_username")
	if !ok {
		masterUsername = defaultMasterUsername
	}
	body := map[string]any{
		"Identifier":     identifier,
		"Engine":         engine,
		"SizeEx":         size,
		"MasterUsername": masterUsername,
	}
	if password, ok := req.Arguments["master_password"].(string); ok && password != "" {
		body["MasterPassword"] = password
	}
	creator, err := mcp.LoadVerb[duplo.Creator](req, duplo.KindRDS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := creator.Create(ctx, body)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, identifier), nil
}

// handleUpdate only knows how to resize; without a size it answers with a
// 400 payload instead of failing.
func (t *Toolset) handleUpdate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := databaseArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	size, ok := mcp.OptionalString(req.Arguments, "size")
	if !ok {
		return mcp.ToolResult{Data: mcp.ErrorPayload{
			Error: "Provide at least one field to update (size)",
			Code:  http.StatusBadRequest,
		}}, nil
	}
	resizer, err := mcp.LoadVerb[duplo.InstanceResizer](req, duplo.KindRDS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := resizer.SetInstanceSize(ctx, name, size)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func (t *Toolset) handleDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := databaseArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.Deleter](req, duplo.KindRDS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.Delete(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func databaseArgs(req mcp.ToolRequest) (string, string, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return "", "", err
	}
	name, err := mcp.RequireArg(req.Arguments, "name", "Database name")
	if err != nil {
		return "", "", err
	}
	return tenantID, name, nil
}

func result(data any, tenantID, name string) mcp.ToolResult {
	meta := mcp.ToolMetadata{Tenant: tenantID}
	if name != "" {
		meta.Resources = []string{"rds/" + name}
	}
	return mcp.ToolResult{Data: data, Metadata: meta}
}
