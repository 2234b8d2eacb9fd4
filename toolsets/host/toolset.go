package host

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
	mcp.MustRegisterToolset("host", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "host"
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
			Name:        "host_list",
			Description: "List native hosts (EC2 instances) in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleList,
		},
		{
			Name:        "host_get",
			Description: "Get a host by friendly name.",
			ToolsetID:   t.ID(),
			InputSchema: schemaHost(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGet,
		},
		{
			Name:        "host_create",
			Description: "Create a host in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaCreate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleCreate,
		},
		{
			Name:        "host_delete",
			Description: "Terminate a host.",
			ToolsetID:   t.ID(),
			InputSchema: schemaHost(),
			Safety:      mcp.SafetyDestructive,
			Handler:     t.handleDelete,
		},
		{
			Name:        "host_reboot",
			Description: "Reboot a host.",
			ToolsetID:   t.ID(),
			InputSchema: schemaHost(),
			Safety:      mcp.SafetyRiskyWrite,
			Handler:     t.handleReboot,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
