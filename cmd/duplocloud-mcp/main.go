package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"duplocloud-mcp/pkg/server"

	_ "duplocloud-mcp/toolsets/bucket"
	_ "duplocloud-mcp/toolsets/database"
	_ "duplocloud-mcp/toolsets/ecs"
	_ "duplocloud-mcp/toolsets/host"
	_ "duplocloud-mcp/toolsets/service"
	_ "duplocloud-mcp/toolsets/tenant"
)

const version = "0.1.0"

var runServer = server.Run
var listTools = server.ListTools
var callTool = server.CallTool
var exit = os.Exit

var errToolFailed = errors.New("tool call failed")

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	options := server.Options{Version: version, Stderr: errOut}

	root := &cobra.Command{
		Use:           "duplocloud-mcp",
		Short:         "MCP server for DuploCloud tenants, hosts, services, databases, buckets and ECS",
		Long:          "Serves DuploCloud operations as MCP tools. The portal is read from DUPLO_HOST and DUPLO_TOKEN; DUPLO_TENANT names the default tenant.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), options)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&options.ConfigPath, "config", "", "config file path (defaults to $"+server.ConfigEnv+")")
	flags.StringSliceVar(&options.Toolsets, "toolsets", nil, "comma-separated toolsets to enable")
	flags.BoolVar(&options.ReadOnly, "read-only", false, "expose read-only tools only")
	flags.BoolVar(&options.DisableDestructive, "disable-destructive", false, "hide destructive tools")
	flags.StringVar(&options.LogLevel, "log-level", "", "log level: error, warn, info, debug")
	flags.StringVar(&options.EnvFile, "env-file", "", "dotenv file with DUPLO_* variables (defaults to ./.env when present)")
	root.Flags().StringVar(&options.Transport, "transport", "", "transport: stdio or http")
	root.Flags().StringVar(&options.ListenAddr, "listen", "", "listen address for the http transport")
	root.Flags().BoolVar(&options.WatchConfig, "watch-config", false, "reload when the config file or its drop-ins change")

	root.AddCommand(newToolsCmd(&options), newCallCmd(&options))
	return root
}

func newToolsCmd(options *server.Options) *cobra.Command {
	asJSON := false
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the current configuration exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := listTools(*options)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tools)
			}
			for _, tool := range tools {
				fmt.Fprintf(out, "%s\t%s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tool definitions with input schemas as JSON")
	return cmd
}

func newCallCmd(options *server.Options) *cobra.Command {
	rawArgs := ""
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool in-process and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseToolArgs(rawArgs)
			if err != nil {
				return err
			}
			text, isError, err := callTool(cmd.Context(), *options, args[0], toolArgs)
			if err != nil {
				return err
			}
			if isError {
				fmt.Fprintln(cmd.ErrOrStderr(), text)
				return errToolFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", "tool arguments as a JSON object")
	return cmd
}

func parseToolArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	return args, nil
}
