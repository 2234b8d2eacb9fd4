package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

func listTTL(ctx ToolContext) time.Duration {
	if ctx.Cache == nil || ctx.Config == nil || ctx.Config.Cache.ListTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(ctx.Config.Cache.ListTTLSeconds) * time.Second
}

func cacheable(spec ToolSpec) bool {
	return spec.Safety == SafetyReadOnly && strings.HasSuffix(spec.Name, "_list")
}

// cacheKey identifies a list call within its toolset's scope. json.Marshal
// sorts map keys, so equal arguments give equal keys.
func cacheKey(spec ToolSpec, args map[string]any) string {
	encoded, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return spec.Name + "?" + string(encoded)
}

// cachedCall serves *_list tools from the store while fresh. A successful
// call of any non-read tool drops the cached lists of its toolset.
func cachedCall(ctx context.Context, spec ToolSpec, req ToolRequest) (ToolResult, error) {
	ttl := listTTL(req.Context)
	if ttl <= 0 {
		return spec.Handler(ctx, req)
	}
	if cacheable(spec) {
		key := cacheKey(spec, req.Arguments)
		if cached, ok := req.Context.Cache.Get(spec.ToolsetID, key); ok {
			if result, ok := cached.(ToolResult); ok {
				klog.V(4).InfoS("list cache hit", "tool", spec.Name)
				return result, nil
			}
		}
		result, err := spec.Handler(ctx, req)
		if err == nil {
			req.Context.Cache.Set(spec.ToolsetID, key, result, ttl)
		}
		return result, err
	}
	result, err := spec.Handler(ctx, req)
	if err == nil && spec.Safety != SafetyReadOnly {
		if dropped := req.Context.Cache.Invalidate(spec.ToolsetID); dropped > 0 {
			klog.V(4).InfoS("list cache invalidated", "tool", spec.Name, "entries", dropped)
		}
	}
	return result, err
}
