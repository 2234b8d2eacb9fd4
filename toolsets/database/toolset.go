package database

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
	mcp.MustRegisterToolset("database", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "database"
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
			Name:        "database_list",
			Description: "List RDS database instances in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleList,
		},
		{
			Name:        "database_get",
			Description: "Get an RDS database instance by identifier.",
			ToolsetID:   t.ID(),
			InputSchema: schemaDatabase(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGet,
		},
		{
			Name:        "database_create",
			Description: "Create an RDS database instance.",
			ToolsetID:   t.ID(),
			InputSchema: schemaCreate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleCreate,
		},
		{
			Name:        "database_update",
			Description: "Update an RDS database instance. Currently supports resizing.",
			ToolsetID:   t.ID(),
			InputSchema: schemaUpdate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleUpdate,
		},
		{
			Name:        "database_delete",
			Description: "Delete an RDS database instance.",
			ToolsetID:   t.ID(),
			InputSchema: schemaDatabase(),
			Safety:      mcp.SafetyDestructive,
			Handler:     t.handleDelete,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
