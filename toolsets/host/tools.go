package host

import (
	"context"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

func (t *Toolset) handleList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.Lister](req, duplo.KindHosts, tenantID)
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
	tenantID, name, err := hostArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := mcp.LoadVerb[duplo.Finder](req, duplo.KindHosts, tenantID)
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
	friendlyName, err := mcp.RequireArg(req.Arguments, "friendly_name", "Friendly name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	capacity, err := mcp.RequireArg(req.Arguments, "capacity", "Instance capacity/type")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	agentPlatform, err := mcp.IntArg(req.Arguments, "agent_platform", 0)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	creator, err := mcp.LoadVerb[duplo.Creator](req, duplo.KindHosts, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := creator.Create(ctx, map[string]any{
		"FriendlyName":  friendlyName,
		"Capacity":      capacity,
		"AgentPlatform": agentPlatform,
	})
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, friendlyName), nil
}

func (t *Toolset) handleDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := hostArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.Deleter](req, duplo.KindHosts, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.Delete(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func (t *Toolset) handleReboot(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := hostArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	rebooter, err := mcp.LoadVerb[duplo.Rebooter](req, duplo.KindHosts, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := rebooter.Reboot(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func hostArgs(req mcp.ToolRequest) (string, string, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return "", "", err
	}
	name, err := mcp.RequireArg(req.Arguments, "name", "Host name")
	if err != nil {
		return "", "", err
	}
	return tenantID, name, nil
}

func result(data any, tenantID, name string) mcp.ToolResult {
	meta := mcp.ToolMetadata{Tenant: tenantID}
	if name != "" {
		meta.Resources = []string{"hosts/" + name}
	}
	return mcp.ToolResult{Data: data, Metadata: meta}
}
