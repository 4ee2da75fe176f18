package main

import (
	"fmt"

	"catalogxl/internal/config"
	"catalogxl/internal/excel"
	"catalogxl/internal/logger"

	"github.com/spf13/cobra"
)

type filterOptions struct {
	names string
	data  string
	yes   bool
}

func newFilterCmd(loadConfig func() (*config.Config, error), makeUI func(*config.Config) *ui) *cobra.Command {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the rows of a spreadsheet whose name appears in another",
		Long: `Filter reads the name column (default "Nome") of the first spreadsheet and
keeps the rows of the second spreadsheet whose trimmed name is among them.
The result is written next to the second file as <name>_FILTRADO.xlsx with
auto-sized, centered columns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runFilter(makeUI(cfg), cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.names, "names", "", "spreadsheet holding the reference names (opens a file picker when empty)")
	cmd.Flags().StringVar(&opts.data, "data", "", "spreadsheet to filter (opens a file picker when empty)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation question")

	return cmd
}

func runFilter(u *ui, cfg *config.Config, opts filterOptions) error {
	xlsx := []string{".xlsx"}

	names, err := pickIfEmpty(u, opts.names, "Selecione o PRIMEIRO arquivo (base de nomes)", xlsx)
	if err != nil {
		return u.fail(err)
	}
	if names == "" {
		fmt.Fprintln(u.out, "Operação cancelada.")
		return nil
	}

	data, err := pickIfEmpty(u, opts.data, "Selecione o SEGUNDO arquivo (dados para filtragem)", xlsx)
	if err != nil {
		return u.fail(err)
	}
	if data == "" {
		fmt.Fprintln(u.out, "Operação cancelada.")
		return nil
	}

	output := excel.OutputPath(data, cfg.Filter.OutputSuffix)

	if !opts.yes {
		ok, err := u.confirmer.Confirm("Confirmar", fmt.Sprintf(
			"Gerar arquivo com base nos nomes de '%s' usando dados de '%s'?\nArquivo de saída: %s",
			names, data, output))
		if err != nil {
			return u.fail(err)
		}
		if !ok {
			logger.Debug("Filter declined by user")
			fmt.Fprintln(u.out, "Processo cancelado.")
			return nil
		}
	}

	logger.Info("Starting filter operation", "names", names, "data", data, "output", output)

	result, err := excel.FilterByName(names, data, output, cfg.Filter.NameColumn)
	if err != nil {
		return u.fail(err)
	}

	u.notifier.Inform("Sucesso", fmt.Sprintf("Concluído!\n\n"+
		"Linhas no Arquivo 1 (nomes de referência): %d\n"+
		"Linhas no Arquivo 2 (dados brutos): %d\n"+
		"Linhas no Arquivo Final (filtrado): %d\n\n"+
		"Salvo em: %s",
		result.ReferenceRows, result.DataRows, result.KeptRows, result.OutputPath))
	return nil
}

func pickIfEmpty(u *ui, path, title string, extensions []string) (string, error) {
	if path != "" {
		return path, nil
	}
	return u.picker.Pick(title, extensions)
}
