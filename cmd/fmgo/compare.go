package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fmgo/internal/compare"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/logging"
	"github.com/rgehrsitz/fmgo/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare the scenarios of a plan",
		Long: `Compare a base scenario against the other scenarios of a plan and
against built-in what-if templates.

Examples:
  fmgo compare plan.yaml
  fmgo compare plan.yaml --base steady --with contribution_double,rate_minus_1pt
  fmgo compare plan.yaml --format csv
  fmgo compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}
			inputFile := args[0]

			rt, err := newRuntimeContext(cmd)
			if err != nil {
				return err
			}
			defer logging.Sync(rt.logger)

			plan, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("locale") {
				plan.Locale = rt.locale
			}

			baseScenarioName, _ := cmd.Flags().GetString("base")
			alternatives, _ := cmd.Flags().GetStringSlice("alternatives")
			templatesStr, _ := cmd.Flags().GetString("with")

			compSet, err := compare.NewCompareEngine(rt.engine).Compare(cmd.Context(), plan, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				Alternatives:     alternatives,
				Templates:        transform.ParseTemplateList(templatesStr),
				ConfigPath:       inputFile,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out := cmd.OutOrStdout()
			outputFormat, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(outputFormat) {
			case "csv":
				formatted, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, formatted)

			case "json":
				includeYearly, _ := cmd.Flags().GetBool("yearly")
				formatted, err := (&compare.JSONFormatter{Pretty: true, IncludeYearly: includeYearly}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, formatted)

			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))

			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base scenario name (defaults to the plan's base)")
	cmd.Flags().StringSlice("alternatives", nil, "Plan scenarios to compare (defaults to every other scenario)")
	cmd.Flags().String("with", "", "Comma-separated list of templates applied to the base scenario")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("yearly", false, "Include yearly ledgers in JSON output")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
