package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duplocloud-mcp/internal/config"
	"duplocloud-mcp/internal/duplo"
	"duplocloud-mcp/internal/mcp/mcptest"
)

func TestRegisterTools(t *testing.T) {
	h := mcptest.New(t, New())
	assert.Equal(t, []string{
		"service_create", "service_delete", "service_get", "service_list", "service_restart", "service_update",
	}, h.Registry.Names())
}

func TestServiceListAndGet(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)
	res.Returns["List"] = []any{map[string]any{"Name": "api"}}
	res.Returns["Find"] = map[string]any{"Name": "api", "Replicas": 2}

	text, isError := h.Call("service_list", map[string]any{"tenant_id": "tid-1"})
	assert.False(t, isError)
	assert.JSONEq(t, `[{"Name":"api"}]`, text)

	text, isError = h.Call("service_get", map[string]any{"tenant_id": "tid-1", "name": "api"})
	assert.False(t, isError)
	assert.JSONEq(t, `{"Name":"api","Replicas":2}`, text)
}

func TestServiceCreateDefaultReplicas(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)

	text, isError := h.Call("service_create", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "nginx:latest"})
	assert.False(t, isError)
	assert.Equal(t, `{"status":"success"}`, text)
	calls := res.CallsTo("Create")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"Name": "api", "Image": "nginx:latest", "Replicas": 1}, calls[0].Args[0])
}

func TestServiceCreateRejectsHugeReplicas(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("service_create", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "nginx:latest", "replicas": 1e20})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"replicas must be an integer","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
}

func TestServiceCreateMissingImage(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("service_create", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "  "})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"Docker image is required and cannot be empty","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
}

func TestServiceUpdateImageOnly(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)

	text, isError := h.Call("service_update", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "nginx:1.27"})
	assert.False(t, isError)
	assert.Equal(t, `{"message":"Service 'api' updated"}`, text)
	require.Len(t, res.CallsTo("UpdateImage"), 1)
	assert.Equal(t, []any{"api", "nginx:1.27"}, res.CallsTo("UpdateImage")[0].Args)
	assert.Empty(t, res.CallsTo("UpdateReplicas"))
}

func TestServiceUpdateBothFieldsInOrder(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)

	_, isError := h.Call("service_update", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "nginx:1.27", "replicas": float64(0)})
	assert.False(t, isError)
	require.Len(t, res.Calls, 2)
	assert.Equal(t, "UpdateImage", res.Calls[0].Verb)
	assert.Equal(t, "UpdateReplicas", res.Calls[1].Verb)
	assert.Equal(t, []any{"api", 0}, res.Calls[1].Args)
}

func TestServiceUpdateNothingToChange(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("service_update", map[string]any{"tenant_id": "tid-1", "name": "api"})
	assert.False(t, isError)
	assert.Equal(t, `{"error":"Provide at least one field to update (image or replicas)","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
}

func TestServiceUpdateStopsOnImageError(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)
	res.Errors["UpdateImage"] = duplo.NewError("Resource not found", 404)

	text, isError := h.Call("service_update", map[string]any{"tenant_id": "tid-1", "name": "api", "image": "x", "replicas": float64(3)})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"Resource not found","code":404}`, text)
	assert.Empty(t, res.CallsTo("UpdateReplicas"))
}

func TestServiceUpdateBadReplicas(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("service_update", map[string]any{"tenant_id": "tid-1", "name": "api", "replicas": "three"})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"replicas must be an integer","code":400}`, text)
}

func TestServiceRestartAndDelete(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindService)
	res.Returns["Restart"] = "restarted"

	text, isError := h.Call("service_restart", map[string]any{"tenant_id": "tid-1", "name": "api"})
	assert.False(t, isError)
	assert.Equal(t, "restarted", text)

	_, isError = h.Call("service_delete", map[string]any{"tenant_id": "tid-1", "name": "api"})
	assert.False(t, isError)
	assert.Len(t, res.CallsTo("Delete"), 1)
}

func TestServiceMissingNameNeverLoads(t *testing.T) {
	h := mcptest.New(t, New())
	for _, tool := range []string{"service_get", "service_delete", "service_restart", "service_update"} {
		text, isError := h.Call(tool, map[string]any{"tenant_id": "tid-1"})
		assert.True(t, isError, tool)
		assert.Equal(t, `{"error":"Service name is required and cannot be empty","code":400}`, text, tool)
	}
	assert.Empty(t, h.Fake.Loads)
}

func TestServiceListCached(t *testing.T) {
	h := mcptest.New(t, New(), func(cfg *config.Config) { cfg.Cache.ListTTLSeconds = 30 })
	res := h.Fake.Resource(duplo.KindService)
	res.Returns["List"] = []any{}

	_, _ = h.Call("service_list", map[string]any{"tenant_id": "tid-1"})
	_, _ = h.Call("service_list", map[string]any{"tenant_id": "tid-1"})
	assert.Len(t, res.CallsTo("List"), 1)
}
