package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"journal-go/internal/app"
	"journal-go/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig loads the config file from the default location.
func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "write", "backup").
func newApp(operation string, opts ...app.Option) (*app.App, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// closeApp folds the error from Close (which uploads snapshots) into the command's result.
func closeApp(a *app.App, err *error) {
	if cerr := a.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// readEntryContent takes the entry text from --file, the arguments, or stdin, in that order.
func readEntryContent(cmd *cobra.Command, args []string) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Write today's entry. Finish with Ctrl-D.")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

var rootCmd = &cobra.Command{
	Use:          "journal",
	Short:        "Personal journal with mood trends",
	SilenceUsage: true,
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// backup subcommands
	backupCmd.AddCommand(backupStatusCmd)
	backupStatusCmd.Flags().IntP("limit", "n", 10, "Maximum number of operations to show")
	backupCmd.AddCommand(backupRestoreCmd)
	backupRestoreCmd.Flags().String("vault", "", "Vault to restore from (default: first configured)")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringP("file", "f", "", "Read the entry from a file")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().IntP("window", "w", 0, "Window in days (default: trends.window_days)")
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().IntP("limit", "n", 10, "Maximum number of areas to show")
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(starterCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
}
