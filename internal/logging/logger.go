// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

// Package logging provides the zerolog-based global logger for CommutePulse.
//
//   - JSON output for production, console output for development
//   - Request ID propagation through context.Context
//   - An slog.Handler bridge for libraries that expect *slog.Logger (sutureslog)
//   - Registered secrets are masked in every written line
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Version: version})
//	logging.AddSecret(token)
//	logging.Info().Str("catalog", "taxi_assign").Msg("Catalog attached")
//	logging.Ctx(ctx).Warn().Str("panel", id).Msg("Panel query failed")
//
// Always terminate event chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every line written by the global logger.
const ServiceName = "commutepulse"

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string

	// Format is the output format: json or console.
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Version is logged as a base field when set.
	Version string

	// Output is the writer for log output. Default: os.Stderr
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex

	scrub = &scrubWriter{}
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	initLogger(Config{})
}

// Init reconfigures the global logger. Registered secrets survive the call.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger configures the global logger (must be called with mu held).
func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"

	var out io.Writer = cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}
	scrub.setOutput(out)

	c := zerolog.New(scrub).With().Timestamp().Str("service", ServiceName)
	if cfg.Version != "" {
		c = c.Str("version", cfg.Version)
	}
	if cfg.Caller {
		c = c.Caller()
	}
	log = c.Logger()
}

// parseLevel converts a string level to zerolog.Level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// AddSecret registers a value that must never appear in log output. Every
// occurrence is replaced with its MaskToken form before the line is written.
func AddSecret(secret string) {
	scrub.add(secret)
}

// scrubWriter masks registered secrets in each log line.
type scrubWriter struct {
	mu      sync.RWMutex
	out     io.Writer
	secrets [][]byte
	masked  [][]byte
}

func (s *scrubWriter) setOutput(out io.Writer) {
	s.mu.Lock()
	s.out = out
	s.mu.Unlock()
}

func (s *scrubWriter) add(secret string) {
	if secret == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.secrets {
		if string(known) == secret {
			return
		}
	}
	s.secrets = append(s.secrets, []byte(secret))
	s.masked = append(s.masked, []byte(MaskToken(secret)))
}

// Write reports len(p) on success even when masking changed the line length.
func (s *scrubWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	out, line := s.out, p
	for i, secret := range s.secrets {
		if bytes.Contains(line, secret) {
			line = bytes.ReplaceAll(line, secret, s.masked[i])
		}
	}
	s.mu.RUnlock()

	if _, err := out.Write(line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Info starts a new message with info level.
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Warn starts a new message with warning level.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

// Error starts a new message with error level.
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal starts a new message with fatal level. os.Exit(1) follows the write.
//
//	logging.Fatal().Err(err).Msg("MotherDuck token not found")
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

// NewTestLogger creates a JSON logger writing to w, for capturing output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
