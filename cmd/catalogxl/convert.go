package main

import (
	"fmt"

	"catalogxl/internal/catalog"
	"catalogxl/internal/config"
	"catalogxl/internal/excel"
	"catalogxl/internal/logger"

	"github.com/spf13/cobra"
)

type convertOptions struct {
	input string
	rules string
}

func newConvertCmd(loadConfig func() (*config.Config, error), makeUI func(*config.Config) *ui) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a JSON product catalog into a spreadsheet",
		Long: `Convert reads a JSON catalog (one product object or an array of them) and
writes one row per product to the "Produtos" sheet of a new .xlsx file next
to the input.

Rule sets:
  v1  consolidated bullets, heading lines dropped   -> <name>_CONSOLIDADO.xlsx
  v2  internal reference column, bold header        -> <name>_FINAL.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runConvert(makeUI(cfg), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "JSON catalog to convert (opens a file picker when empty)")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "rule set to apply: v1 or v2 (default from config)")

	return cmd
}

func runConvert(u *ui, cfg *config.Config, opts convertOptions) error {
	rulesName := opts.rules
	if rulesName == "" {
		rulesName = cfg.Convert.Rules
	}

	rules, err := catalog.RulesFor(rulesName, cfg.Convert.HeadingDenylist)
	if err != nil {
		return u.fail(err)
	}

	input := opts.input
	if input == "" {
		input, err = u.picker.Pick("Selecione o arquivo JSON", []string{".json"})
		if err != nil {
			return u.fail(err)
		}
		if input == "" {
			logger.Debug("Conversion cancelled before processing")
			return nil
		}
	}

	logger.Info("Starting convert operation", "input", input, "rules", rules.Version)

	result, err := excel.ConvertCatalog(input, rules)
	if err != nil {
		return u.fail(err)
	}

	title, message := convertSummary(rules.Version, result)
	u.notifier.Inform(title, message)
	return nil
}

func convertSummary(v catalog.Version, result *excel.ConvertResult) (string, string) {
	if v == catalog.V1 {
		return "Pronto!", fmt.Sprintf("Planilha gerada com:\n"+
			"- Todas descrições consolidadas\n"+
			"- Todos opcionais extraídos\n\n"+
			"Produtos: %d\n"+
			"Salvo em: %s", result.Rows, result.OutputPath)
	}
	return "Sucesso!", fmt.Sprintf("Planilha gerada com:\n"+
		"- Referências internas extraídas\n"+
		"- Todos dados técnicos\n"+
		"- Formatação profissional\n\n"+
		"Produtos: %d\n"+
		"Salvo em: %s", result.Rows, result.OutputPath)
}
