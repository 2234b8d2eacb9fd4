package mcp

import (
	"context"
	"time"

	"duplocloud-mcp/internal/config"
)

// Portal calls that only read are expected to answer quickly. Writes can
// chain several requests (the ECS image update makes five) and get more room.
const (
	portalReadTimeout  = 30 * time.Second
	portalWriteTimeout = 2 * time.Minute
)

func withToolTimeout(ctx context.Context, cfg *config.Config, spec ToolSpec) (context.Context, context.CancelFunc) {
	timeout := toolTimeout(cfg, spec)
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// toolTimeout resolves the deadline for one call: per_tool by tool name, then
// per_tool by toolset id, then default_seconds, then the portal default for
// the tool's safety class. max_seconds caps whichever applies.
func toolTimeout(cfg *config.Config, spec ToolSpec) time.Duration {
	if cfg == nil {
		return 0
	}
	timeout := portalDefault(spec.Safety)
	if cfg.Timeouts.DefaultSeconds > 0 {
		timeout = seconds(cfg.Timeouts.DefaultSeconds)
	}
	if override, ok := cfg.Timeouts.PerTool[spec.ToolsetID]; ok && override > 0 {
		timeout = seconds(override)
	}
	if override, ok := cfg.Timeouts.PerTool[spec.Name]; ok && override > 0 {
		timeout = seconds(override)
	}
	if limit := seconds(cfg.Timeouts.MaxSeconds); limit > 0 && timeout > limit {
		timeout = limit
	}
	return timeout
}

func portalDefault(safety ToolSafety) time.Duration {
	if safety == SafetyReadOnly {
		return portalReadTimeout
	}
	return portalWriteTimeout
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
