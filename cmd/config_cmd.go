package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/greencarbon/internal/cli"
	"github.com/theirongolddev/greencarbon/internal/config"
	"github.com/theirongolddev/greencarbon/internal/predict"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	cfg := appCfg
	path := configPath()

	status := "using defaults (no config file)"
	if _, err := os.Stat(path); err == nil {
		status = "loaded"
	}

	fmt.Fprintln(w, cli.RenderTitle("GREENCARBON CONFIG"))
	fmt.Fprintln(w, cli.RenderKV("Config file", path))
	fmt.Fprintln(w, cli.RenderKV("Status", status))

	sections := []struct {
		name string
		kvs  [][2]string
	}{
		{"API", [][2]string{
			{"Base URL", baseURL(cfg) + " (" + baseURLSource(cfg) + ")"},
			{"Endpoint", baseURL(cfg) + predict.Path},
			{"Timeout", cfg.API.Timeout().String()},
		}},
		{"Appearance", [][2]string{{"Theme", cfg.Appearance.Theme}}},
		{"Display", [][2]string{{"Locale", cfg.Display.Tag().String()}}},
		{"Log", [][2]string{
			{"Level", cfg.Log.Level},
			{"File", cfg.Log.LogPath()},
		}},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "\n  [%s]\n", sec.name)
		for _, kv := range sec.kvs {
			fmt.Fprintln(w, cli.RenderKV(kv[0], kv[1]))
		}
	}

	fmt.Fprintln(w, "\n  Run `greencarbon setup` to reconfigure.")
	return nil
}

// baseURLSource names where the effective base URL came from.
func baseURLSource(cfg config.Config) string {
	switch {
	case flagAPIURL != "":
		return "--api-url"
	case os.Getenv(config.EnvAPIURL) != "":
		return config.EnvAPIURL
	case os.Getenv(config.EnvLegacyAPIURL) != "":
		return config.EnvLegacyAPIURL
	case cfg.API.BaseURL != "":
		return "config"
	default:
		return "default"
	}
}
