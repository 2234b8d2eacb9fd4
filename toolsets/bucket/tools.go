package bucket

import (
	"context"
	"net/http"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

func (t *Toolset) handleList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.Lister](req, duplo.KindS3, tenantID)
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
	tenantID, name, err := bucketArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := mcp.LoadVerb[duplo.Finder](req, duplo.KindS3, tenantID)
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
	tenantID, name, err := bucketArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	creator, err := mcp.LoadVerb[duplo.Creator](req, duplo.KindS3, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := creator.Create(ctx, map[string]any{"Name": name})
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

// handleUpdate submits the full current bucket state with the requested
// changes merged in. Without any change it answers with a 400 payload
// instead of failing.
func (t *Toolset) handleUpdate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := bucketArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	versioning, err := mcp.OptionalBool(req.Arguments, "versioning")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	if versioning == nil {
		return mcp.ToolResult{Data: mcp.ErrorPayload{
			Error: "Provide at least one field to update (versioning)",
			Code:  http.StatusBadRequest,
		}}, nil
	}
	res, err := req.Context.LoadResource(req.User, duplo.KindS3, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := duplo.As[duplo.Finder](res)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	updater, err := duplo.As[duplo.Updater](res)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	current, err := finder.Find(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	if current == nil {
		current = map[string]any{}
	}
	current["EnableVersioning"] = *versioning
	data, err := updater.Update(ctx, name, current)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func (t *Toolset) handleDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := bucketArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.Deleter](req, duplo.KindS3, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.Delete(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func bucketArgs(req mcp.ToolRequest) (string, string, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return "", "", err
	}
	name, err := mcp.RequireArg(req.Arguments, "name", "Bucket name")
	if err != nil {
		return "", "", err
	}
	return tenantID, name, nil
}

func result(data any, tenantID, name string) mcp.ToolResult {
	meta := mcp.ToolMetadata{Tenant: tenantID}
	if name != "" {
		meta.Resources = []string{"s3/" + name}
	}
	return mcp.ToolResult{Data: data, Metadata: meta}
}
