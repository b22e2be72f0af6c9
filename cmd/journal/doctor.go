package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"journal-go/internal/config"
	"journal-go/internal/database"
	"journal-go/internal/vault"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

var errDoctorFailed = errors.New("some checks failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, secrets, database and vaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfg, err := readConfig()
		if !report(out, "config", err) {
			return errDoctorFailed
		}

		ok := report(out, "environment", config.CheckEnv(requiredEnv(cfg)...))
		if err := config.CheckEnv(config.JWTSecretEnv); err != nil {
			fmt.Fprintf(out, "%s serve: %v\n", warnMark, err)
		}

		dbCheck := "database (" + cfg.Database.Type + ")"
		store, err := database.NewStoreFromConfig(cfg.Database, cfg.UserID)
		if err == nil {
			if sqlite, isSQLite := store.(*database.SQLiteStore); isSQLite {
				dbCheck, err = checkSQLite(sqlite)
			}
			store.Close()
		}
		ok = report(out, dbCheck, err) && ok

		for _, vc := range cfg.Vaults {
			v, err := vault.NewVaultFromConfig(vc)
			if err == nil {
				err = v.ValidateSetup()
			}
			ok = report(out, "vault "+vc.Name+" ("+vc.Type+")", err) && ok
		}

		if !ok {
			return errDoctorFailed
		}
		return nil
	},
}

func checkSQLite(store *database.SQLiteStore) (string, error) {
	st, err := store.MigrationStatus()
	if err != nil {
		return "database (sqlite)", err
	}
	check := fmt.Sprintf("database %s (schema %d/%d)", store.Path(), st.Current, st.Latest)
	if !st.UpToDate() {
		return check, store.CheckMigrations()
	}
	return check, nil
}

// requiredEnv lists the secrets the configured backends need.
func requiredEnv(cfg *config.Config) []string {
	var names []string
	if cfg.Analysis.Type == "" || cfg.Analysis.Type == "anthropic" {
		names = append(names, config.AnthropicAPIKeyEnv)
	}
	if cfg.Database.Type == "postgres" && cfg.Database.URL == "" {
		names = append(names, config.DatabaseURLEnv)
	}
	return names
}

func report(w io.Writer, check string, err error) bool {
	if err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", failMark, check, err)
		return false
	}
	fmt.Fprintf(w, "%s %s\n", okMark, check)
	return true
}
