package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkjsonrpc "github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"duplocloud-mcp/internal/config"
	"duplocloud-mcp/internal/duplo"
	dmcp "duplocloud-mcp/internal/mcp"
	"duplocloud-mcp/internal/metrics"

	_ "duplocloud-mcp/toolsets/bucket"
	_ "duplocloud-mcp/toolsets/tenant"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildRuntimeMinimalConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toolsets = []string{}

	toolCtx, reg, err := buildRuntime(cfg, io.Discard, nil)
	if err != nil {
		t.Fatalf("buildRuntime failed: %v", err)
	}
	if toolCtx.Duplo == nil || toolCtx.Invoker == nil || toolCtx.Cache == nil {
		t.Fatalf("expected provider, invoker and cache: %#v", toolCtx)
	}
	if reg == nil {
		t.Fatalf("expected registry")
	}
	if len(reg.Names()) != 0 {
		t.Fatalf("expected no tools registered")
	}
}

func TestBuildRuntimeRegistersToolsets(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toolsets = []string{"tenant"}
	cfg.ReadOnly = true

	_, reg, err := buildRuntime(cfg, io.Discard, nil)
	if err != nil {
		t.Fatalf("buildRuntime failed: %v", err)
	}
	names := strings.Join(reg.Names(), ",")
	if names != "tenant_get,tenant_list" {
		t.Fatalf("unexpected tools: %s", names)
	}
}

func TestBuildRuntimeUnknownToolset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toolsets = []string{"missing"}

	_, _, err := buildRuntime(cfg, io.Discard, nil)
	if !errors.Is(err, dmcp.ErrUnknownToolset) {
		t.Fatalf("expected unknown toolset error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bucket, tenant") {
		t.Fatalf("expected available toolsets in error, got %v", err)
	}
}

func TestRunWithInMemoryTransport(t *testing.T) {
	configPath := writeConfig(t, `toolsets = ["tenant"]`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := Run(ctx, Options{
		ConfigPath:   configPath,
		Version:      "test",
		Stderr:       io.Discard,
		SDKTransport: fakeTransport{},
	})
	if time.Since(start) > time.Second {
		t.Fatalf("run took too long")
	}
	_ = err
}

func TestRunConfigLoadError(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	err := Run(context.Background(), Options{
		ConfigPath:   filepath.Join(t.TempDir(), "missing.toml"),
		Version:      "test",
		Stderr:       io.Discard,
		SDKTransport: fakeTransport{},
	})
	if err == nil {
		t.Fatalf("expected error for config load failure")
	}
}

func TestRunUsesEnvConfig(t *testing.T) {
	configPath := writeConfig(t, "toolsets = [\"tenant\"]\n")
	t.Setenv(ConfigEnv, configPath)

	err := Run(context.Background(), Options{
		Version:      "test",
		Stderr:       io.Discard,
		SDKTransport: fakeTransport{},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunTransportError(t *testing.T) {
	configPath := writeConfig(t, "toolsets = [\"tenant\"]\n")
	err := Run(context.Background(), Options{
		ConfigPath:   configPath,
		Version:      "test",
		Stderr:       io.Discard,
		SDKTransport: errorTransport{},
	})
	if err == nil {
		t.Fatalf("expected server error")
	}
}

func TestRunOverridesApplied(t *testing.T) {
	configPath := writeConfig(t, `toolsets = ["tenant"]`)
	err := Run(context.Background(), Options{
		ConfigPath:         configPath,
		Toolsets:           []string{"tenant", "bucket"},
		ReadOnly:           true,
		DisableDestructive: true,
		LogLevel:           "debug",
		Stderr:             nil,
		SDKTransport:       fakeTransport{},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunInitError(t *testing.T) {
	configPath := writeConfig(t, "toolsets = [\"missing\"]\n")
	err := Run(context.Background(), Options{
		ConfigPath:   configPath,
		Version:      "test",
		Stderr:       io.Discard,
		SDKTransport: fakeTransport{},
	})
	if err == nil {
		t.Fatalf("expected init error")
	}
}

func TestListToolsHonorsReadOnly(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	tools, err := ListTools(Options{Toolsets: []string{"bucket"}, ReadOnly: true, Stderr: io.Discard})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	if strings.Join(names, ",") != "bucket_get,bucket_list" {
		t.Fatalf("unexpected tools: %v", names)
	}
}

func TestCallToolAgainstPortal(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	var gotAuth string
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/GetTenantsForUser" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"TenantId":"tid-1","AccountName":"dev"}]`))
	}))
	defer portal.Close()
	t.Setenv(duplo.EnvHost, portal.URL)
	t.Setenv(duplo.EnvToken, "secret")
	t.Setenv(duplo.EnvTenant, "")

	text, isError, err := CallTool(context.Background(), Options{Toolsets: []string{"tenant"}, Stderr: io.Discard}, "tenant_list", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if isError {
		t.Fatalf("unexpected error result: %s", text)
	}
	if !strings.Contains(text, `"TenantId":"tid-1"`) {
		t.Fatalf("unexpected text: %s", text)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestCallToolMissingHost(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	t.Setenv(duplo.EnvHost, "")
	t.Setenv(duplo.EnvToken, "secret")

	text, isError, err := CallTool(context.Background(), Options{Toolsets: []string{"tenant"}, Stderr: io.Discard}, "tenant_list", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !isError || !strings.Contains(text, "DUPLO_HOST environment variable is required") {
		t.Fatalf("expected configuration error, got %v %s", isError, text)
	}
}

func TestCallToolUnknownTool(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	_, _, err := CallTool(context.Background(), Options{Toolsets: []string{"tenant"}, Stderr: io.Discard}, "tenant_explode", nil)
	if err == nil {
		t.Fatalf("expected unknown tool error")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duplo.env")
	if err := os.WriteFile(path, []byte("DUPLO_HOST=https://file.duplocloud.net\nDUPLO_TOKEN=from-file\n"), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(duplo.EnvHost, "")
	_ = os.Unsetenv(duplo.EnvHost)
	t.Setenv(duplo.EnvToken, "from-env")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv(duplo.EnvHost); got != "https://file.duplocloud.net" {
		t.Fatalf("expected host from file, got %q", got)
	}
	if got := os.Getenv(duplo.EnvToken); got != "from-env" {
		t.Fatalf("expected existing token to win, got %q", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("default env file is optional: %v", err)
	}
}

func TestVerbosity(t *testing.T) {
	cases := map[string]int{
		"error": 0,
		"warn":  0,
		"info":  1,
		"":      1,
		"DEBUG": 4,
		"trace": 6,
	}
	for level, want := range cases {
		if got := verbosity(level); got != want {
			t.Fatalf("verbosity(%q) = %d, want %d", level, got, want)
		}
	}
}

func TestHTTPHandlerHealth(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "test"}, nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(server, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthEndpoint, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHTTPHandlerMetrics(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "test"}, nil)
	recorder := metrics.NewRecorder()
	recorder.ObserveToolCall("tenant_list", "tenant", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	newHTTPHandler(server, recorder).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, metricsEndpoint, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `duplocloud_mcp_tool_calls_total{outcome="success",tool="tenant_list",toolset="tenant"} 1`) {
		t.Fatalf("missing tool call metric:\n%s", rec.Body.String())
	}
}

func TestServeHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveHTTP(ctx, http.NotFoundHandler(), "127.0.0.1:0")
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveHTTP: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serveHTTP did not stop")
	}
}

func TestServeHTTPListenError(t *testing.T) {
	if err := serveHTTP(context.Background(), http.NotFoundHandler(), "127.0.0.1:-1"); err == nil {
		t.Fatalf("expected listen error")
	}
}

func TestRunHTTPTransport(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := Run(ctx, Options{
		Toolsets:   []string{"tenant"},
		Transport:  config.TransportHTTP,
		ListenAddr: "127.0.0.1:0",
		Stderr:     io.Discard,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

type errorToolset struct {
	id string
}

func (t errorToolset) ID() string {
	return t.id
}

func (t errorToolset) Version() string {
	return "0.0.0"
}

func (t errorToolset) Init(dmcp.ToolsetContext) error {
	return fmt.Errorf("init error")
}

func (t errorToolset) Register(dmcp.Registry) error {
	return nil
}

type registerErrorToolset struct {
	id string
}

func (t registerErrorToolset) ID() string {
	return t.id
}

func (t registerErrorToolset) Version() string {
	return "0.0.0"
}

func (t registerErrorToolset) Init(dmcp.ToolsetContext) error {
	return nil
}

func (t registerErrorToolset) Register(dmcp.Registry) error {
	return fmt.Errorf("register error")
}

func TestBuildRuntimeToolsetInitError(t *testing.T) {
	id := fmt.Sprintf("test-init-%d", time.Now().UnixNano())
	if err := dmcp.RegisterToolset(id, func() dmcp.Toolset { return errorToolset{id: id} }); err != nil {
		t.Fatalf("register toolset: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Toolsets = []string{id}
	_, _, err := buildRuntime(cfg, io.Discard, nil)
	if err == nil {
		t.Fatalf("expected init error")
	}
}

func TestBuildRuntimeToolsetRegisterError(t *testing.T) {
	id := fmt.Sprintf("test-register-%d", time.Now().UnixNano())
	if err := dmcp.RegisterToolset(id, func() dmcp.Toolset { return registerErrorToolset{id: id} }); err != nil {
		t.Fatalf("register toolset: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Toolsets = []string{id}
	_, _, err := buildRuntime(cfg, io.Discard, nil)
	if err == nil {
		t.Fatalf("expected register error")
	}
}

type fakeTransport struct{}

func (fakeTransport) Connect(context.Context) (sdkmcp.Connection, error) {
	return &fakeConn{}, nil
}

type fakeConn struct{}

func (c *fakeConn) Read(context.Context) (sdkjsonrpc.Message, error) {
	return nil, io.EOF
}

func (c *fakeConn) Write(context.Context, sdkjsonrpc.Message) error {
	return nil
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) SessionID() string {
	return "test"
}

type errorTransport struct{}

func (errorTransport) Connect(context.Context) (sdkmcp.Connection, error) {
	return nil, fmt.Errorf("connect error")
}

type blockingTransport struct {
	done chan struct{}
}

func (t blockingTransport) Connect(context.Context) (sdkmcp.Connection, error) {
	return &blockingConn{done: t.done}, nil
}

type blockingConn struct {
	done chan struct{}
}

func (c *blockingConn) Read(context.Context) (sdkjsonrpc.Message, error) {
	<-c.done
	return nil, io.EOF
}

func (c *blockingConn) Write(context.Context, sdkjsonrpc.Message) error {
	return nil
}

func (c *blockingConn) Close() error {
	return nil
}

func (c *blockingConn) SessionID() string {
	return "blocking"
}
