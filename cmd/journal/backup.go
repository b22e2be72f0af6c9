package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"journal-go/internal/app"
	"journal-go/internal/render"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the database to every vault",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp("backup")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if err := a.Backup(); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploading snapshot to %d vault(s)\n", len(a.Config().Vaults))
		return nil
	},
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare local and vault snapshot versions",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("backup-status")
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		status, err := a.BackupStatus(limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Local version: %d\n\n", status.LocalVersion)

		vaultRows := make([][]string, 0, len(status.Vaults))
		for _, v := range status.Vaults {
			vaultRows = append(vaultRows, []string{v.Name, v.Type, vaultVersion(v), vaultState(v, status.LocalVersion)})
		}
		if err := render.Table(out, []string{"Vault", "Type", "Version", "State"}, vaultRows); err != nil {
			return err
		}

		if len(status.History) == 0 {
			fmt.Fprintln(out, "\nNo operations recorded.")
			return nil
		}

		fmt.Fprintln(out)
		historyRows := make([][]string, 0, len(status.History))
		for _, op := range status.History {
			duration := ""
			if op.FinishedAt != nil {
				duration = op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
			}
			historyRows = append(historyRows, []string{
				"#" + strconv.FormatInt(op.ID, 10),
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			})
		}
		return render.Table(out, []string{"ID", "Operation", "Started", "Status", "Duration"}, historyRows)
	},
}

func vaultVersion(v app.VaultStatus) string {
	if v.Err != nil {
		return "?"
	}
	return strconv.FormatInt(v.Version, 10)
}

func vaultState(v app.VaultStatus, local int64) string {
	switch {
	case v.Err != nil:
		return "error: " + v.Err.Error()
	case v.Version == local:
		return "in sync"
	case v.Version < local:
		return "behind"
	default:
		return "ahead, restore needed"
	}
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the local database with a vault snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultName, _ := cmd.Flags().GetString("vault")

		cfg, err := readConfig()
		if err != nil {
			return err
		}

		dest, err := app.Restore(cfg, vaultName)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored database to %s\n", dest)
		return nil
	},
}
