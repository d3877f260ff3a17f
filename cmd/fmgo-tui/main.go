package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/tui"
)

func main() {
	cmd := &cobra.Command{
		Use:          "fmgo-tui [request-file]",
		Short:        "Interactive first-million calculator",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().String("locale", "", "Presentation locale (en-US, pt-BR)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Engine: calculation.NewCalculationEngineWithConfig(settings.EngineConfig()),
		Locale: settings.Locale,
	}
	if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
		if opts.Locale, err = domain.ParseLocale(locale); err != nil {
			return err
		}
	}

	// Pre-fill the form from a request file
	if len(args) > 0 {
		requestPath := args[0]
		if _, err := os.Stat(requestPath); os.IsNotExist(err) {
			return fmt.Errorf("request file not found: %s", requestPath)
		}
		req, err := config.NewInputParser().LoadRequest(requestPath)
		if err != nil {
			return err
		}
		opts.Request = &req
	}

	p := tea.NewProgram(
		tui.NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
