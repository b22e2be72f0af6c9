package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"journal-go/internal/app"
	"journal-go/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		userID := uuid.New().String()
		cfg := config.NewConfig(userID, defaults.BaseDir)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Fprintf(out, "User ID:  %s\n", userID)
		fmt.Fprintf(out, "Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Fprintf(out, "User ID:      %s\n", cfg.UserID)
		fmt.Fprintf(out, "Base Dir:     %s\n", cfg.BaseDir)
		fmt.Fprintf(out, "Log Dir:      %s\n", cfg.LogDir)
		fmt.Fprintf(out, "Database:     %s\n", cfg.Database.Type)
		fmt.Fprintf(out, "Analysis:     %s (%s)\n", cfg.Analysis.Type, cfg.Analysis.Model)
		fmt.Fprintf(out, "Trend window: %d days\n", cfg.Trends.WindowDays)
		fmt.Fprintf(out, "Server:       %s\n", cfg.Server.Addr)
		for _, v := range cfg.Vaults {
			fmt.Fprintf(out, "Vault:        %s (%s)\n", v.Name, v.Type)
		}
		return nil
	},
}
