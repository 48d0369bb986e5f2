// Package logx builds the structured loggers used by the commands.
package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/target-hunter/internal/config"
)

// New returns a logger writing to w at the level named by TH_LOG_LEVEL
// (info when unset or unknown).
func New(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(config.GetEnv("TH_LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// NewFile returns a logger appending to TH_LOG_FILE, or discarding output
// when it is unset. Full-screen frontends use it so logs don't tear the
// display. The returned close func is never nil.
func NewFile(prefix string) (*log.Logger, func() error, error) {
	path := config.GetEnv("TH_LOG_FILE", "")
	if path == "" {
		return New(io.Discard, prefix), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(io.Discard, prefix), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	return New(f, prefix), f.Close, nil
}
