package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/mj1618/win-ctrl/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing win-ctrl tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes every win-ctrl
operation as a tool, AeroSpace state as aerospace:// resources, and
workflow prompts.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Logs always go to stderr or the configured log file; stdout carries the
protocol.

Examples:
  win-ctrl serve
  win-ctrl serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: "+strings.Join(server.Transports, ", "))
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("response-format", "json", "Tool and resource text format: json, yaml")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	respFormat, _ := cmd.Flags().GetString("response-format")

	if !slices.Contains(server.Transports, transport) {
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
	format, err := output.ParseFormat(respFormat)
	if err != nil {
		return err
	}

	cfg := server.Config{Transport: transport, Port: port, Format: format}
	return server.New(application, cfg).Serve(cfg)
}
