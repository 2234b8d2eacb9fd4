package bucket

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
	assert.Equal(t, []string{"bucket_create", "bucket_delete", "bucket_get", "bucket_list", "bucket_update"}, h.Registry.Names())
}

func TestRegisterAllowlistedDelete(t *testing.T) {
	h := mcptest.New(t, New(), func(cfg *config.Config) {
		cfg.DisableDestructive = true
		cfg.Safety.AllowDestructiveTools = []string{"bucket_delete"}
	})
	_, ok := h.Registry.Get("bucket_delete")
	assert.True(t, ok)
}

func TestBucketCreate(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindS3)

	_, isError := h.Call("bucket_create", map[string]any{"tenant_id": "tid-1", "name": "assets"})
	assert.False(t, isError)
	assert.Equal(t, map[string]any{"Name": "assets"}, res.CallsTo("Create")[0].Args[0])
}

func TestBucketUpdateMergesCurrentState(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindS3)
	res.Returns["Find"] = map[string]any{"Name": "assets", "EnableVersioning": false, "AllowPublicAccess": false}

	_, isError := h.Call("bucket_update", map[string]any{"tenant_id": "tid-1", "name": "assets", "versioning": true})
	assert.False(t, isError)
	require.Len(t, res.Calls, 2)
	assert.Equal(t, "Find", res.Calls[0].Verb)
	assert.Equal(t, "Update", res.Calls[1].Verb)
	assert.Equal(t, []any{"assets", map[string]any{
		"Name":              "assets",
		"EnableVersioning":  true,
		"AllowPublicAccess": false,
	}}, res.Calls[1].Args)
}

func TestBucketUpdateWithoutVersioningIsNoop(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindS3)

	text, isError := h.Call("bucket_update", map[string]any{"tenant_id": "tid-1", "name": "assets"})
	assert.False(t, isError)
	assert.Equal(t, `{"error":"Provide at least one field to update (versioning)","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
	assert.Empty(t, res.CallsTo("Update"))
}

func TestBucketUpdateFindFails(t *testing.T) {
	h := mcptest.New(t, New())
	res := h.Fake.Resource(duplo.KindS3)
	res.Errors["Find"] = duplo.NewError("Resource not found", 404)

	text, isError := h.Call("bucket_update", map[string]any{"tenant_id": "tid-1", "name": "ghost", "versioning": true})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"Resource not found","code":404}`, text)
	assert.Empty(t, res.CallsTo("Update"))
}

func TestBucketUpdateBadVersioning(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("bucket_update", map[string]any{"tenant_id": "tid-1", "name": "assets", "versioning": "on"})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"versioning must be a boolean","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
}

func TestBucketDeleteMissingName(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("bucket_delete", map[string]any{"tenant_id": "tid-1"})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"Bucket name is required and cannot be empty","code":400}`, text)
}

func TestBucketGetReportsTenantBeforeName(t *testing.T) {
	h := mcptest.New(t, New())
	text, isError := h.Call("bucket_get", map[string]any{"tenant_id": " ", "name": ""})
	assert.True(t, isError)
	assert.Equal(t, `{"error":"Tenant ID is required and cannot be empty","code":400}`, text)
	assert.Empty(t, h.Fake.Loads)
}

func TestBucketListWriteInvalidatesCache(t *testing.T) {
	h := mcptest.New(t, New(), func(cfg *config.Config) { cfg.Cache.ListTTLSeconds = 60 })
	res := h.Fake.Resource(duplo.KindS3)
	res.Returns["List"] = []any{map[string]any{"Name": "assets"}}
	args := map[string]any{"tenant_id": "tid-1"}

	_, _ = h.Call("bucket_list", args)
	_, _ = h.Call("bucket_list", args)
	assert.Len(t, res.CallsTo("List"), 1)

	_, isError := h.Call("bucket_delete", map[string]any{"tenant_id": "tid-1", "name": "assets"})
	assert.False(t, isError)
	_, _ = h.Call("bucket_list", args)
	assert.Len(t, res.CallsTo("List"), 2)
}
