package cmd

import (
	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/submit"
	"github.com/theirongolddev/greencarbon/internal/tui"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive intake form",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	client := newClient(appCfg)
	ctrl := submit.NewController(client, zap.L())
	app := tui.NewApp(ctrl, report.NewRenderer(appCfg.Display.Tag()), client.Endpoint())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "TUI error")
	}

	return nil
}
