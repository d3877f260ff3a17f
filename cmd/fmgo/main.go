package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/logging"
	"github.com/rgehrsitz/fmgo/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fmgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fmgo",
		Short: "First million calculator CLI",
		Long: `Compound interest projections with monthly contributions.

Answers two questions: how long a monthly contribution takes to reach the
target, and which monthly contribution reaches it in a fixed number of years.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().String("locale", "", "Presentation locale (en-US, pt-BR); defaults to FMGO_LOCALE")

	root.AddCommand(calculateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(sensitivityCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// runtimeContext is what every projection command needs: settings, the
// resolved locale and an engine wired to a logger
type runtimeContext struct {
	settings *config.Settings
	locale   domain.Locale
	engine   *calculation.CalculationEngine
	logger   *zap.Logger
}

func newRuntimeContext(cmd *cobra.Command) (*runtimeContext, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	locale := settings.Locale
	if flag, _ := cmd.Flags().GetString("locale"); flag != "" {
		if locale, err = domain.ParseLocale(flag); err != nil {
			return nil, err
		}
	}

	engineConfig := settings.EngineConfig()
	engineConfig.Locale = locale
	engine := calculation.NewCalculationEngineWithConfig(engineConfig)

	logger := zap.NewNop()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err = logging.New(logging.Options{Level: "debug", Development: true})
		if err != nil {
			return nil, err
		}
		engine.SetLogger(logger.Sugar())
		engine.Debug = true
	}

	return &runtimeContext{settings: settings, locale: locale, engine: engine, logger: logger}, nil
}

// addRequestFlags registers the flags describing one calculation request
func addRequestFlags(cmd *cobra.Command) {
	defaults := domain.DefaultRequest()
	cmd.Flags().StringP("input", "i", "", "Read the request from a YAML file; other flags override it")
	cmd.Flags().StringP("mode", "m", string(defaults.Mode), "Calculation mode (TIME_TO_TARGET, CONTRIBUTION_FOR_TERM)")
	cmd.Flags().String("initial", "0", "Initial value")
	cmd.Flags().String("contribution", "500", "Monthly contribution (TIME_TO_TARGET)")
	cmd.Flags().Int("years", defaults.TargetYears, "Target years (CONTRIBUTION_FOR_TERM)")
	cmd.Flags().String("rate", "10", "Interest rate in percent")
	cmd.Flags().String("period", string(defaults.RatePeriod), "Rate period (ANNUAL, MONTHLY)")
}

// requestFromFlags builds a request from --input and the request flags and
// validates it against the parser limits. Amount flags are read in the
// conventions of locale.
func requestFromFlags(cmd *cobra.Command, parser *config.InputParser, locale domain.Locale) (domain.CalculationRequest, error) {
	req := domain.DefaultRequest()

	if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
		loaded, err := parser.LoadRequest(inputFile)
		if err != nil {
			return req, err
		}
		req = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") || req.Mode == "" {
		value, _ := flags.GetString("mode")
		mode, err := domain.ParseMode(value)
		if err != nil {
			return req, err
		}
		req.Mode = mode
	}
	if flags.Changed("period") || req.RatePeriod == "" {
		value, _ := flags.GetString("period")
		period, err := domain.ParsePeriod(value)
		if err != nil {
			return req, err
		}
		req.RatePeriod = period
	}
	if flags.Changed("initial") {
		value, _ := flags.GetString("initial")
		req.InitialValue = config.ParseAmount(value, locale)
	}
	if flags.Changed("contribution") {
		value, _ := flags.GetString("contribution")
		req.MonthlyContribution = config.ParseAmount(value, locale)
	}
	if flags.Changed("years") {
		req.TargetYears, _ = flags.GetInt("years")
	}
	if flags.Changed("rate") {
		value, _ := flags.GetString("rate")
		req.InterestRate = config.ParseAmount(value, locale)
	}

	if err := parser.ValidateRequest(req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Project one request",
		Long: `Project one request month by month.

Examples:
  fmgo calculate --contribution 500 --rate 10
  fmgo calculate --mode CONTRIBUTION_FOR_TERM --years 10 --rate 10 --locale pt-BR
  fmgo calculate --input request.yaml --format html --output report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntimeContext(cmd)
			if err != nil {
				return err
			}
			defer logging.Sync(rt.logger)

			parser := config.NewInputParser()
			req, err := requestFromFlags(cmd, parser, rt.locale)
			if err != nil {
				return err
			}

			result, err := rt.engine.Compute(cmd.Context(), req)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			report := output.NewReport(name, result, rt.locale)

			format, _ := cmd.Flags().GetString("format")
			if format == "" {
				format = rt.settings.Format
			}
			outputFile, _ := cmd.Flags().GetString("output")
			if outputFile != "" {
				written, err := output.SaveReport(report, format, outputFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
			} else if err := output.GenerateReport(cmd.OutOrStdout(), report, format); err != nil {
				return err
			}

			if summaryFile, _ := cmd.Flags().GetString("summary"); summaryFile != "" {
				if err := output.SaveSummary(report, summaryFile); err != nil {
					return fmt.Errorf("failed to save summary: %w", err)
				}
			}
			if saveFile, _ := cmd.Flags().GetString("save"); saveFile != "" {
				if err := config.SaveRequest(req, saveFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Request saved to %s\n", saveFile)
			}
			return nil
		},
	}
	addRequestFlags(cmd)
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s); defaults to FMGO_FORMAT", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("name", "", "Name shown in the report")
	cmd.Flags().String("summary", "", "Also write a YAML summary to this file")
	cmd.Flags().String("save", "", "Save the request as a YAML input file")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a request or plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			parser := config.NewInputParser()
			plan, err := parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			for _, s := range plan.Scenarios {
				if err := parser.ValidateRequest(s.Request); err != nil {
					return fmt.Errorf("scenario %s: %w", s.Name, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios)\n", inputFile, len(plan.Scenarios))
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
