package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mj1618/win-ctrl/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Inspect or create the config file",
	Annotations: map[string]string{offline: ""},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the default config file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a commented sample config file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(config.Sample), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
