package tenant

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
	mcp.MustRegisterToolset("tenant", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "tenant"
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
			Name:        "tenant_list",
			Description: "List all DuploCloud tenants visible to the current token.",
			ToolsetID:   t.ID(),
			InputSchema: schemaList(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleList,
		},
		{
			Name:        "tenant_get",
			Description: "Get a tenant by name.",
			ToolsetID:   t.ID(),
			InputSchema: schemaName(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGet,
		},
		{
			Name:        "tenant_create",
			Description: "Create a tenant under an infrastructure plan.",
			ToolsetID:   t.ID(),
			InputSchema: schemaCreate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleCreate,
		},
		{
			Name:        "tenant_delete",
			Description: "Delete a tenant by name.",
			ToolsetID:   t.ID(),
			InputSchema: schemaName(),
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
