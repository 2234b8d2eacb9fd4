package service

import (
	"context"
	"fmt"
	"net/http"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

func (t *Toolset) handleList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.Lister](req, duplo.KindService, tenantID)
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
	tenantID, name, err := serviceArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	finder, err := mcp.LoadVerb[duplo.Finder](req, duplo.KindService, tenantID)
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
	tenantID, name, err := serviceArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	image, err := mcp.RequireArg(req.Arguments, "image", "Docker image")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	replicas, err := mcp.IntArg(req.Arguments, "replicas", 1)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	creator, err := mcp.LoadVerb[duplo.Creator](req, duplo.KindService, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := creator.Create(ctx, map[string]any{
		"Name":     name,
		"Image":    image,
		"Replicas": replicas,
	})
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

// handleUpdate applies the image change before the replica change. With
// neither supplied it answers with a 400 payload instead of failing.
func (t *Toolset) handleUpdate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := serviceArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	image, hasImage := mcp.OptionalString(req.Arguments, "image")
	replicas, hasReplicas, err := mcp.OptionalInt(req.Arguments, "replicas")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	if !hasImage && !hasReplicas {
		return mcp.ToolResult{Data: mcp.ErrorPayload{
			Error: "Provide at least one field to update (image or replicas)",
			Code:  http.StatusBadRequest,
		}}, nil
	}
	res, err := req.Context.LoadResource(req.User, duplo.KindService, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	if hasImage {
		updater, err := duplo.As[duplo.ImageUpdater](res)
		if err != nil {
			return mcp.ToolResult{}, err
		}
		if _, err := updater.UpdateImage(ctx, name, image); err != nil {
			return mcp.ToolResult{}, err
		}
	}
	if hasReplicas {
		updater, err := duplo.As[duplo.ReplicaUpdater](res)
		if err != nil {
			return mcp.ToolResult{}, err
		}
		if _, err := updater.UpdateReplicas(ctx, name, replicas); err != nil {
			return mcp.ToolResult{}, err
		}
	}
	return result(map[string]any{"message": fmt.Sprintf("Service '%s' updated", name)}, tenantID, name), nil
}

func (t *Toolset) handleDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := serviceArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.Deleter](req, duplo.KindService, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.Delete(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func (t *Toolset) handleRestart(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, name, err := serviceArgs(req)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	restarter, err := mcp.LoadVerb[duplo.Restarter](req, duplo.KindService, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := restarter.Restart(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, name), nil
}

func serviceArgs(req mcp.ToolRequest) (string, string, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return "", "", err
	}
	name, err := mcp.RequireArg(req.Arguments, "name", "Service name")
	if err != nil {
		return "", "", err
	}
	return tenantID, name, nil
}

func result(data any, tenantID, name string) mcp.ToolResult {
	meta := mcp.ToolMetadata{Tenant: tenantID}
	if name != "" {
		meta.Resources = []string{"service/" + name}
	}
	return mcp.ToolResult{Data: data, Metadata: meta}
}
