// Package logging builds the process logger. The TUI owns stdout and
// stderr, so everything is written to a file under the cache directory.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// New opens a file logger at ~/.cache/lia/lia.log. Failure to set up
// logging degrades to a no-op logger rather than blocking startup.
func New() *zap.Logger {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return zap.NewNop()
	}
	dir := filepath.Join(cacheDir, "lia")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "lia.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
