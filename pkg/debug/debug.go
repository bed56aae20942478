// Package debug provides category-based debug logging for llmhub and
// installs the process-wide slog handler.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): LLMHUB_DEBUG env or config
//   - Levels (HOW MUCH detail): LLMHUB_LOG_LEVEL env or config
//
// Usage:
//
//	debug.Log("vendor", "request", "url", url, "model", model)
//	if debug.Enabled("catalog") { /* expensive formatting */ }
//
// Categories: vendor, catalog, engine, transport, mcp, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below slog.LevelDebug for maximum verbosity.
// At TRACE, full untruncated vendor request and response bodies are logged.
const LevelTrace = slog.LevelDebug - 4

// Log output formats accepted by Init.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// categories is read-only after Init.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv("LLMHUB_DEBUG"))
}

// Options are the config-file values for Init. Environment variables take
// precedence over each field.
type Options struct {
	Categories string
	Level      string
	Format     string
}

// Init configures categories and installs the default slog logger writing to
// stderr.
func Init(opts Options) {
	InitWriter(os.Stderr, opts)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, opts Options) {
	categories = parseCategories(envOr("LLMHUB_DEBUG", opts.Categories))

	level := envOr("LLMHUB_LOG_LEVEL", opts.Level)
	format := envOr("LLMHUB_LOG_FORMAT", opts.Format)
	slog.SetDefault(slog.New(NewHandler(w, format, ParseLevel(level))))
}

// NewHandler returns a JSON handler for format "json" and a text handler
// otherwise.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace-level message for the given category.
// Only visible when LLMHUB_LOG_LEVEL=TRACE.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// TraceIsEnabled reports whether TRACE level is active for the given category.
func TraceIsEnabled(category string) bool {
	if !Enabled(category) {
		return false
	}
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// Raw writes plain text to stderr without any slog formatting.
// Only emitted when category is enabled AND level is TRACE.
func Raw(category string, text string) {
	if !TraceIsEnabled(category) {
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Categories returns the list of enabled categories.
func Categories() []string {
	var result []string
	for k := range categories {
		result = append(result, k)
	}
	return result
}

// Truncate returns s truncated to maxLen bytes, with "..." appended if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	if s == "" {
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
