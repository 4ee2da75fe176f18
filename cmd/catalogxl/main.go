package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"catalogxl/internal/config"
	"catalogxl/internal/dialog"
	"catalogxl/internal/logger"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// ui bundles the interactive collaborators so tests can replace them
type ui struct {
	picker    dialog.Picker
	confirmer dialog.Confirmer
	notifier  dialog.Notifier
	out       io.Writer
}

// reportedError marks a failure the user has already been notified about
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// fail logs err and shows it in a single warning notification
func (u *ui) fail(err error) error {
	logger.Error("Run failed", "error", err)
	u.notifier.Warn("Erro", fmt.Sprintf("Falha ao processar:\n%v", err))
	return &reportedError{err: err}
}

func terminalUI(cfg *config.Config) *ui {
	return &ui{
		picker: &dialog.TerminalPicker{
			StartDirectory: cfg.Picker.StartDirectory,
			PageSize:       cfg.Picker.PageSize,
		},
		confirmer: dialog.TerminalConfirmer{},
		notifier:  &dialog.TerminalNotifier{Out: os.Stdout},
		out:       os.Stdout,
	}
}

func newRootCmd(makeUI func(*config.Config) *ui) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "catalogxl",
		Short: "Convert JSON product catalogs to spreadsheets and filter spreadsheets by name",
		Long: `catalogxl converts JSON product catalogs into formatted .xlsx sheets and
filters one spreadsheet's rows by the names listed in another.

Each command is a single run: pick the input file(s), transform, write the
output next to the input, and report the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the TOML config file")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Error("Failed to load config", "error", err)
			return nil, fmt.Errorf("error loading config: %v", err)
		}
		return cfg, nil
	}

	root.AddCommand(newConvertCmd(loadConfig, makeUI))
	root.AddCommand(newFilterCmd(loadConfig, makeUI))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return root
}

func main() {
	if err := newRootCmd(terminalUI).Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
