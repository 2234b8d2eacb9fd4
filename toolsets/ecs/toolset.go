package ecs

import (
	"errors"
	"fmt"

	"duplocloud-mcp/internal/mcp"
)

type Toolset struct {
	ctx mcp.ToolsetContext
}

func New() *Toolset {
	return &Toolset{}
}

func init() {
	mcp.MustRegisterToolset("ecs", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "ecs"
}

func (t *Toolset) Version() string {
	return "0.1.0"
}

func (t *Toolset) Init(ctx mcp.ToolsetContext) error {
	if ctx.Duplo == nil {
		return errors.New("missing duplo client provider")
	}
	t.ctx = ctx
	return nil
}

func (t *Toolset) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "ecs_service_list",
			Description: "List ECS services in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleServiceList,
		},
		{
			Name:        "ecs_task_def_list",
			Description: "List ECS task definition families in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleTaskDefList,
		},
		{
			Name:        "ecs_task_list",
			Description: "List running ECS tasks for a service.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTaskList(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleTaskList,
		},
		{
			Name:        "ecs_task_run",
			Description: "Run tasks from the latest revision of a task definition family.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTaskRun(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleTaskRun,
		},
		{
			Name:        "ecs_service_update",
			Description: "Update the image of a task definition family and the ECS service that runs it.",
			ToolsetID:   t.ID(),
			InputSchema: schemaServiceUpdate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleServiceUpdate,
		},
		{
			Name:        "ecs_service_delete",
			Description: "Delete an ECS service.",
			ToolsetID:   t.ID(),
			InputSchema: schemaServiceDelete(),
			Safety:      mcp.SafetyDestructive,
			Handler:     t.handleServiceDelete,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
