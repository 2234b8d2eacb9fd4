package service

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
	mcp.MustRegisterToolset("service", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "service"
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
			Name:        "service_list",
			Description: "List DuploCloud services in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleList,
		},
		{
			Name:        "service_get",
			Description: "Get a service by name.",
			ToolsetID:   t.ID(),
			InputSchema: schemaService(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGet,
		},
		{
			Name:        "service_create",
			Description: "Create a service from a Docker image.",
			ToolsetID:   t.ID(),
			InputSchema: schemaCreate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleCreate,
		},
		{
			Name:        "service_update",
			Description: "Update a service image and/or replica count. Provide only the fields to change.",
			ToolsetID:   t.ID(),
			InputSchema: schemaUpdate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleUpdate,
		},
		{
			Name:        "service_delete",
			Description: "Delete a service.",
			ToolsetID:   t.ID(),
			InputSchema: schemaService(),
			Safety:      mcp.SafetyDestructive,
			Handler:     t.handleDelete,
		},
		{
			Name:        "service_restart",
			Description: "Restart a service, triggering a rolling redeployment.",
			ToolsetID:   t.ID(),
			InputSchema: schemaService(),
			Safety:      mcp.SafetyRiskyWrite,
			Handler:     t.handleRestart,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
