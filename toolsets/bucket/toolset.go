package bucket

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
	mcp.MustRegisterToolset("bucket", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "bucket"
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
			Name:        "bucket_list",
			Description: "List S3 buckets in a tenant.",
			ToolsetID:   t.ID(),
			InputSchema: schemaTenant(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleList,
		},
		{
			Name:        "bucket_get",
			Description: "Get an S3 bucket by name.",
			ToolsetID:   t.ID(),
			InputSchema: schemaBucket(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGet,
		},
		{
			Name:        "bucket_create",
			Description: "Create an S3 bucket.",
			ToolsetID:   t.ID(),
			InputSchema: schemaBucket(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleCreate,
		},
		{
			Name:        "bucket_update",
			Description: "Update an S3 bucket configuration.",
			ToolsetID:   t.ID(),
			InputSchema: schemaUpdate(),
			Safety:      mcp.SafetyWrite,
			Handler:     t.handleUpdate,
		},
		{
			Name:        "bucket_delete",
			Description: "Delete an S3 bucket.",
			ToolsetID:   t.ID(),
			InputSchema: schemaBucket(),
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
