package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogPath returns the configured log file, defaulting to the cache dir.
func (c LogConfig) LogPath() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(CacheDir(), "greencarbon.log")
}

// InitLogger builds the global zap logger. Output goes to the log file because the
// dashboard owns the terminal; verbose mirrors it to stderr for one-shot commands.
func InitLogger(cfg LogConfig, verbose bool) error {
	zapCfg := zap.NewProductionConfig()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(lvl)

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return eris.Wrap(err, "config: creating log dir")
	}
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	if verbose {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, "stderr")
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
