// Package logging configures the two loggers this module uses: the
// library code under internal/... logs through go-ethereum's structured
// log package, and NewCLILogger builds a zap logger dressed with zapdriver
// fields for ingestion by a Stackdriver-style log pipeline. cmd/solgwctl
// does not call NewCLILogger; it logs through the go-ethereum logger too.
package logging

import (
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"go.uber.org/zap"

	"github.com/blendle/zapdriver"
)

// SetupLibrary installs a leveled handler on the package-wide go-ethereum
// logger, the same one internal/provider, internal/outcall, and
// internal/wallet call into directly.
func SetupLibrary(levelName string) error {
	ethlog.SetDefault(ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(os.Stderr, parseLevel(levelName), false)))
	return nil
}

func parseLevel(name string) slog.Level {
	switch name {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewCLILogger builds a zap logger for CLI operational output, separate
// from the library's go-ethereum logger. cmd/solgwctl does not use it.
func NewCLILogger(debug bool) (*zap.Logger, error) {
	cfg := zapdriver.NewProductionConfig()
	if debug {
		cfg = zapdriver.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zapdriver.WrapCore())
	if err != nil {
		return nil, err
	}
	return logger, nil
}
