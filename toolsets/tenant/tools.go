package tenant

import (
	"context"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

func (t *Toolset) handleList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	lister, err := mcp.LoadVerb[duplo.Lister](req, duplo.KindTenant, "")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := lister.List(ctx)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return mcp.ToolResult{Data: data}, nil
}

func (t *Toolset) handleGet(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name, err := mcp.RequireArg(req.Arguments, "name", "Tenant name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := mcp.LoadVerb[duplo.Finder](req, duplo.KindTenant, "")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := finder.Find(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, name), nil
}

func (t *Toolset) handleCreate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	accountName, err := mcp.RequireArg(req.Arguments, "account_name", "Account name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	planID, err := mcp.RequireArg(req.Arguments, "plan_id", "Plan ID")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	creator, err := mcp.LoadVerb[duplo.Creator](req, duplo.KindTenant, "")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := creator.Create(ctx, map[string]any{
		"AccountName": accountName,
		"PlanID":      planID,
	})
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, accountName), nil
}

func (t *Toolset) handleDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name, err := mcp.RequireArg(req.Arguments, "name", "Tenant name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.Deleter](req, duplo.KindTenant, "")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.Delete(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, name), nil
}

func result(data any, name string) mcp.ToolResult {
	return mcp.ToolResult{Data: data, Metadata: mcp.ToolMetadata{Resources: []string{"tenant/" + name}}}
}
