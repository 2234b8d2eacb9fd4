package ecs

import (
	"context"

	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp"
)

func (t *Toolset) handleServiceList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.ServiceLister](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := lister.ListServices(ctx)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, ""), nil
}

func (t *Toolset) handleTaskDefList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.TaskDefFamilyLister](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := lister.ListTaskDefFamilies(ctx)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, ""), nil
}

func (t *Toolset) handleTaskList(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	serviceName, err := mcp.RequireArg(req.Arguments, "service_name", "Service name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	lister, err := mcp.LoadVerb[duplo.TaskLister](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := lister.ListTasks(ctx, serviceName)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, "service/"+serviceName), nil
}

func (t *Toolset) handleTaskRun(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	family, err := mcp.RequireArg(req.Arguments, "family_name", "Task definition family name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	replicas, err := mcp.IntArg(req.Arguments, "replicas", 1)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	runner, err := mcp.LoadVerb[duplo.TaskRunner](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := runner.RunTask(ctx, family, replicas)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, "taskdef/"+family), nil
}

func (t *Toolset) handleServiceUpdate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	family, err := mcp.RequireArg(req.Arguments, "name", "Task definition family name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	image, err := mcp.RequireArg(req.Arguments, "image", "Docker image")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	updater, err := mcp.LoadVerb[duplo.ImageUpdater](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := updater.UpdateImage(ctx, family, image)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, "taskdef/"+family), nil
}

func (t *Toolset) handleServiceDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	tenantID, err := mcp.RequireTenant(req.Arguments)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	name, err := mcp.RequireArg(req.Arguments, "name", "ECS service name")
	if err != nil {
		return mcp.ToolResult{}, err
	}
	deleter, err := mcp.LoadVerb[duplo.ServiceDeleter](req, duplo.KindECS, tenantID)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	data, err := deleter.DeleteService(ctx, name)
	if err != nil {
		return mcp.ToolResult{}, err
	}
	return result(data, tenantID, "service/"+name), nil
}

func result(data any, tenantID, resource string) mcp.ToolResult {
	meta := mcp.ToolMetadata{Tenant: tenantID}
	if resource != "" {
		meta.Resources = []string{"ecs/" + resource}
	}
	return mcp.ToolResult{Data: data, Metadata: meta}
}
