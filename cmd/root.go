package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/win-ctrl/internal/app"
	"github.com/mj1618/win-ctrl/internal/config"
	"github.com/mj1618/win-ctrl/internal/logging"
	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/mj1618/win-ctrl/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "win-ctrl",
	Short: "Control AeroSpace windows, workspaces and displays",
	Long: `win-ctrl drives the AeroSpace tiling window manager. It runs as an MCP
server for AI agents (win-ctrl serve) and exposes the same operations as
commands for scripts and humans.`,
	SilenceUsage: true,
}

// application is built by the root pre-run hook for commands that need it.
var (
	application *app.App
	logCloser   io.Closer
)

// errReported marks a failure whose envelope has already been printed.
var errReported = errors.New("failure reported")

func Execute() {
	err := rootCmd.Execute()
	shutdown()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json (default from config, yaml)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/win-ctrl/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = setup
}

// offline marks commands that run without loading config or building the
// App.
const offline = "offline"

func setup(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[offline]; ok {
		return nil
	}
	path, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = strings.ToLower(lvl)
	}
	// Use the root persistent flag directly to avoid conflicts with
	// subcommand local flags (e.g. capture --format png).
	if f, _ := rootCmd.PersistentFlags().GetString("format"); f != "" {
		cfg.OutputFormat = strings.ToLower(f)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	output.OutputFormat = format
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

	logger, closer, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	logCloser = closer

	application, err = app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	return nil
}

func shutdown() {
	if application != nil {
		if err := application.Close(); err != nil {
			application.Log.Warn("failed to close", "err", err)
		}
		application = nil
	}
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}
