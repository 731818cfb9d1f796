package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/theirongolddev/greencarbon/internal/config"
	"github.com/theirongolddev/greencarbon/internal/predict"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard answers as edited strings.
type setupValues struct {
	baseURL string
	timeout string
	theme   string
	locale  string
}

var localeOptions = []struct {
	label string
	value string
}{
	{"한국어 (1,234.5)", "ko"},
	{"English (1,234.5)", "en"},
	{"Deutsch (1.234,5)", "de"},
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg
	vals := setupValues{
		baseURL: cfg.API.BaseURL,
		timeout: strconv.Itoa(cfg.API.TimeoutSec),
		theme:   cfg.Appearance.Theme,
		locale:  cfg.Display.Locale,
	}

	if err := newSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg = vals.apply(cfg)
	if err := config.SaveTo(configPath(), cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Printf("  Endpoint: %s%s\n", baseURL(cfg), predict.Path)
	fmt.Println("  Run `greencarbon setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}
	localeOpts := make([]huh.Option[string], 0, len(localeOptions))
	for _, l := range localeOptions {
		localeOpts = append(localeOpts, huh.NewOption(l.label, l.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to greencarbon!").
				Description("Point the client at your prediction backend and pick how reports look."),
			huh.NewInput().
				Title("Backend base URL").
				Description("Requests go to <base>"+predict.Path+". Leave empty for "+predict.DefaultBaseURL+".").
				Placeholder(predict.DefaultBaseURL).
				Value(&v.baseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Value(&v.timeout).
				Validate(validateTimeout),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
			huh.NewSelect[string]().
				Title("Number format").
				Options(localeOpts...).
				Value(&v.locale),
		),
	)
}

func (v setupValues) apply(cfg config.Config) config.Config {
	cfg.API.BaseURL = strings.TrimSpace(v.baseURL)
	if n, err := strconv.Atoi(strings.TrimSpace(v.timeout)); err == nil && n > 0 {
		cfg.API.TimeoutSec = n
	}
	cfg.Appearance.Theme = theme.ByName(v.theme).Name
	if v.locale != "" {
		cfg.Display.Locale = v.locale
	}
	return cfg
}

func validateBaseURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("enter an http(s) URL, e.g. " + predict.DefaultBaseURL)
	}
	return nil
}

func validateTimeout(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number of seconds")
	}
	return nil
}
