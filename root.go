package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/pathfinder/internal/config"
	"github.com/LFroesch/pathfinder/internal/logger"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var configPath string
	var startPath string

	cmd := &cobra.Command{
		Use:   "pathfinder [directory]",
		Short: "Keyboard-driven file browser with editor handoff",
		Long: `Pathfinder is a keyboard-driven file browser for the terminal.

One text field drives everything: type to create, type a path to jump,
and use control keys to search, rename, delete and open entries in your
editor. Directories can be ignored via .gitignore-style rule files.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := startPath
			if len(args) == 1 {
				dir = args[0]
			}
			return run(configPath, dir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/pathfinder/config.yaml)")
	cmd.Flags().StringVarP(&startPath, "path", "p", "", "directory to start in (default the working directory)")
	return cmd
}

func run(configPath, dir string) error {
	var cfg *config.Config
	if configPath != "" {
		cfg = config.LoadFrom(configPath)
	} else {
		cfg = config.Load()
	}

	if cfg.LogEnabled {
		if err := logger.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		}
		defer logger.Close()
	} else {
		logger.Disable()
	}

	if dir == "" {
		dir = cfg.StartPath
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	m, err := initialModel(cfg, dir)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
