package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"duplocloud-mcp/internal/audit"
	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/policy"
)

var ErrToolNotFound = errors.New("tool not found")

type ToolInvoker struct {
	reg *ToolRegistry
	ctx ToolContext
}

func NewToolInvoker(reg *ToolRegistry, ctx ToolContext) *ToolInvoker {
	return &ToolInvoker{reg: reg, ctx: ctx}
}

func (i *ToolInvoker) Call(ctx context.Context, user policy.User, toolName string, args map[string]any) (ToolResult, error) {
	if i == nil || i.reg == nil {
		return ToolResult{}, errors.New("tool registry not available")
	}
	spec, ok := i.reg.Get(toolName)
	if !ok {
		return ToolResult{}, fmt.Errorf("%w: %s", ErrToolNotFound, toolName)
	}
	return runTool(ctx, i.ctx, spec, user, args)
}

// CallText runs a tool and returns its normalized text form.
func (i *ToolInvoker) CallText(ctx context.Context, user policy.User, toolName string, args map[string]any) (string, bool) {
	result, err := i.Call(ctx, user, toolName, args)
	return Normalize(toolName, result.Data, err)
}

// runTool is the single execution path for SDK and in-process calls: tool
// policy, timeout, list cache, panic recovery, metrics and audit.
func runTool(ctx context.Context, tc ToolContext, spec ToolSpec, user policy.User, args map[string]any) (result ToolResult, err error) {
	callID := uuid.NewString()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			klog.ErrorS(nil, "tool panicked", "tool", spec.Name, "callID", callID, "panic", r, "stack", string(debug.Stack()))
			result = ToolResult{}
			err = fmt.Errorf("%v", r)
		}
		elapsed := time.Since(start)
		klog.V(4).InfoS("tool call finished", "tool", spec.Name, "callID", callID, "duration", elapsed, "failed", err != nil)
		tc.Metrics.ObserveToolCall(spec.Name, spec.ToolsetID, elapsed, err)
		logAudit(tc, spec, callID, user.ID, args, result.Metadata, err)
	}()

	if tc.Policy != nil {
		if authErr := tc.Policy.AuthorizeTool(spec.ToolsetID, spec.Name); authErr != nil {
			return ToolResult{}, &duplo.Error{
				Message: fmt.Sprintf("Tool '%s' is denied by policy", spec.Name),
				Code:    http.StatusForbidden,
				Err:     authErr,
			}
		}
	}
	if args == nil {
		args = map[string]any{}
	}
	execCtx, cancel := withToolTimeout(ctx, tc.Config, spec)
	defer cancel()
	return cachedCall(execCtx, spec, ToolRequest{Arguments: args, User: user, Context: tc})
}

func logAudit(ctx ToolContext, spec ToolSpec, callID, userID string, args map[string]any, meta ToolMetadata, err error) {
	if ctx.Audit == nil {
		return
	}
	tenant := meta.Tenant
	if tenant == "" {
		if value, ok := args["tenant_id"].(string); ok {
			tenant = strings.TrimSpace(value)
		}
	}
	arguments := args
	if ctx.Redactor != nil {
		arguments = ctx.Redactor.RedactMap(args)
	}
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		CallID:    callID,
		UserID:    userID,
		Tool:      spec.Name,
		Toolset:   spec.ToolsetID,
		Tenant:    tenant,
		Resources: meta.Resources,
		Arguments: arguments,
		Outcome:   "success",
	}
	if err != nil {
		event.Outcome = "error"
		event.Error = err.Error()
	}
	ctx.Audit.Log(event)
}
