// Package cmd implements the greencarbon CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/greencarbon/internal/cli"
	"github.com/theirongolddev/greencarbon/internal/config"
	"github.com/theirongolddev/greencarbon/internal/predict"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig  string
	flagAPIURL  string
	flagTheme   string
	flagVerbose bool
	flagQuiet   bool
)

// appCfg is the effective configuration, loaded before any command runs.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "greencarbon",
	Short: "Carbon footprint report for your spending",
	Long: "Send a spending CSV or free-form spending text to the prediction backend and " +
		"see monthly carbon emissions with eco-friendly recommendations.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	_ = zap.L().Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Prediction backend base URL (overrides env and config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme: forest-dark, forest-light, terminal")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Mirror logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadSettings is the shared setup path used by all commands: config file,
// flag overrides, then the global logger.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(configPath())
	if err != nil {
		return err
	}
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	appCfg = cfg

	if err := config.InitLogger(cfg.Log, flagVerbose); err != nil {
		// Logging is best effort; the commands still work without it.
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Logging disabled: %v\n", err)
		}
		zap.ReplaceGlobals(zap.NewNop())
	}
	return nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

// baseURL resolves the backend: --api-url, then env vars, then config, then default.
func baseURL(cfg config.Config) string {
	if flagAPIURL != "" {
		return predict.NormalizeBaseURL(flagAPIURL)
	}
	return config.GetBaseURL(cfg)
}

func newClient(cfg config.Config) *predict.Client {
	return predict.NewClient(baseURL(cfg),
		predict.WithTimeout(cfg.API.Timeout()),
		predict.WithLogger(zap.L()),
	)
}
