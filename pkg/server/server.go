package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"k8s.io/klog/v2"

	"duplocloud-mcp/internal/audit"
	"duplocloud-mcp/internal/cache"
	"duplocloud-mcp/internal/config"
	"duplocloud-mcp/internal/duplo"
	dmcp "duplocloud-mcp/internal/mcp"
	"duplocloud-mcp/internal/metrics"
	"duplocloud-mcp/internal/policy"
	"duplocloud-mcp/internal/redact"
)

const ConfigEnv = "DUPLOCLOUD_MCP_CONFIG"

type Options struct {
	ConfigPath         string
	Toolsets           []string
	ReadOnly           bool
	DisableDestructive bool
	LogLevel           string
	Transport          string
	ListenAddr         string
	EnvFile            string
	WatchConfig        bool
	Version            string
	Stderr             io.Writer

	// SDKTransport replaces the stdio transport when set.
	SDKTransport sdkmcp.Transport
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

func (o Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return os.Getenv(ConfigEnv)
}

func (o Options) overrides() config.Overrides {
	overrides := config.Overrides{}
	if len(o.Toolsets) > 0 {
		overrides.Toolsets = &o.Toolsets
	}
	if o.ReadOnly {
		overrides.ReadOnly = &o.ReadOnly
	}
	if o.DisableDestructive {
		overrides.DisableDestructive = &o.DisableDestructive
	}
	if o.LogLevel != "" {
		overrides.LogLevel = &o.LogLevel
	}
	if o.Transport != "" {
		overrides.Transport = &o.Transport
	}
	if o.ListenAddr != "" {
		overrides.ListenAddr = &o.ListenAddr
	}
	if o.EnvFile != "" {
		overrides.EnvFile = &o.EnvFile
	}
	if o.WatchConfig {
		overrides.WatchConfig = &o.WatchConfig
	}
	return overrides
}

func loadConfig(opts Options) (config.Config, error) {
	path := opts.configPath()
	cfg, err := config.Load(path, config.DropInDir(path), opts.overrides())
	if err != nil {
		return cfg, fmt.Errorf("config load failed: %w", err)
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Run(ctx context.Context, opts Options) error {
	errOut := opts.stderr()
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	initLogging(cfg.LogLevel, errOut)

	recorder := metrics.NewRecorder()
	toolCtx, reg, err := buildRuntime(cfg, errOut, recorder)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "duplocloud-mcp", Version: opts.Version}, nil)
	toolNames, err := dmcp.RegisterSDKTools(server, reg, toolCtx)
	if err != nil {
		return fmt.Errorf("tool registration failed: %w", err)
	}
	klog.V(1).InfoS("tools registered", "count", len(toolNames), "toolsets", cfg.Toolsets, "transport", cfg.Transport)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := newReloadRequests()
	reload.forwardSignals(runCtx)
	if path := opts.configPath(); cfg.WatchConfig && path != "" {
		stop, err := watchConfig(path, reload.trigger)
		if err != nil {
			klog.ErrorS(err, "config watch disabled", "path", path)
		} else {
			defer func() { _ = stop() }()
		}
	}

	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case <-reload:
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				fmt.Fprintf(errOut, "config reload failed: %v\n", err)
				continue
			}
			initLogging(cfg.LogLevel, errOut)
			toolCtx, reg, err := buildRuntime(cfg, errOut, recorder)
			if err != nil {
				fmt.Fprintf(errOut, "reload init failed: %v\n", err)
				continue
			}
			if len(toolNames) > 0 {
				server.RemoveTools(toolNames...)
			}
			toolNames, err = dmcp.RegisterSDKTools(server, reg, toolCtx)
			if err != nil {
				fmt.Fprintf(errOut, "tool registration failed: %v\n", err)
				continue
			}
			klog.V(1).InfoS("configuration reloaded", "tools", len(toolNames))
		}
	}()

	if opts.SDKTransport == nil && cfg.Transport == config.TransportHTTP {
		if err := serveHTTP(runCtx, newHTTPHandler(server, recorder), cfg.ListenAddr); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
	transport := opts.SDKTransport
	if transport == nil {
		transport = &sdkmcp.StdioTransport{}
	}
	if err := server.Run(runCtx, transport); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// ListTools builds the runtime described by opts and returns the tools it
// would expose, without serving.
func ListTools(opts Options) ([]dmcp.ToolInfo, error) {
	errOut := opts.stderr()
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	initLogging(cfg.LogLevel, errOut)
	_, reg, err := buildRuntime(cfg, errOut, nil)
	if err != nil {
		return nil, fmt.Errorf("init failed: %w", err)
	}
	return reg.List(), nil
}

// CallTool runs one tool in-process as the local user and returns the same
// text and error flag an MCP client would receive.
func CallTool(ctx context.Context, opts Options, name string, args map[string]any) (string, bool, error) {
	errOut := opts.stderr()
	cfg, err := loadConfig(opts)
	if err != nil {
		return "", false, err
	}
	initLogging(cfg.LogLevel, errOut)
	toolCtx, _, err := buildRuntime(cfg, errOut, nil)
	if err != nil {
		return "", false, fmt.Errorf("init failed: %w", err)
	}
	result, err := toolCtx.Invoker.Call(ctx, toolCtx.Policy.LocalUser(), name, args)
	if errors.Is(err, dmcp.ErrToolNotFound) {
		return "", false, err
	}
	text, isError := dmcp.Normalize(name, result.Data, err)
	return text, isError, nil
}

func buildRuntime(cfg config.Config, errOut io.Writer, recorder *metrics.Recorder) (dmcp.ToolContext, *dmcp.ToolRegistry, error) {
	provider := duplo.NewProvider()
	authorizer := policy.NewAuthorizer(cfg.Policy.AllowedTenants, cfg.Policy.DeniedTools)
	redactor := redact.New()
	auditLogger := audit.NewLogger(errOut)
	reg := dmcp.NewRegistry(&cfg)

	toolCtx := dmcp.ToolContext{
		Config:   &cfg,
		Duplo:    provider,
		Policy:   authorizer,
		Redactor: redactor,
		Audit:    auditLogger,
		Cache:    cache.NewStore(),
		Metrics:  recorder,
		Registry: reg,
	}
	toolCtx.Invoker = dmcp.NewToolInvoker(reg, toolCtx)
	toolsetCtx := dmcp.ToolsetContext(toolCtx)

	for _, id := range cfg.Toolsets {
		toolset, err := dmcp.NewToolset(id)
		if err != nil {
			return dmcp.ToolContext{}, nil, err
		}
		if err := toolset.Init(toolsetCtx); err != nil {
			return dmcp.ToolContext{}, nil, err
		}
		if err := toolset.Register(reg); err != nil {
			return dmcp.ToolContext{}, nil, err
		}
		klog.V(4).InfoS("toolset registered", "toolset", toolset.ID(), "version", toolset.Version())
	}

	return toolCtx, reg, nil
}
