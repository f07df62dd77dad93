// Package logger provides namespaced debug logging gated by the DEBUG
// environment variable, following the conventions of the debug npm package:
//
//	DEBUG=*                enables all loggers
//	DEBUG=structure:*      enables a whole namespace
//	DEBUG=cli:run,rbac:*   enables specific namespaces
//	DEBUG=*,-cli:discover  enables everything except a pattern
package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Logger writes debug lines for a single namespace to stderr.
type Logger struct {
	namespace string
	enabled   bool
	color     string

	mu      sync.Mutex
	lastLog time.Time
}

var (
	debugEnv    = os.Getenv("DEBUG")
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	stderrIsTTY = term.IsTerminal(int(os.Stderr.Fd()))

	// ANSI 256-color codes readable on light and dark backgrounds.
	palette = []string{
		"\033[38;5;33m",  // blue
		"\033[38;5;35m",  // green
		"\033[38;5;166m", // orange
		"\033[38;5;125m", // purple
		"\033[38;5;37m",  // cyan
		"\033[38;5;161m", // magenta
	}

	colorReset = "\033[0m"
)

// New creates a Logger for the given namespace. The enabled state is
// computed once at construction from the DEBUG environment variable.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   enabledFor(namespace, debugEnv),
		color:     namespaceColor(namespace),
		lastLog:   time.Now(),
	}
}

// Enabled reports whether this logger emits output.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf prints a formatted debug line with the time elapsed since the
// previous line from this logger.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.print(fmt.Sprintf(format, args...))
}

// Print prints a debug line with the time elapsed since the previous line
// from this logger.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.print(fmt.Sprint(args...))
}

func (l *Logger) print(message string) {
	l.mu.Lock()
	now := time.Now()
	diff := now.Sub(l.lastLog)
	l.lastLog = now
	l.mu.Unlock()

	if l.color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s +%s\n", l.color, l.namespace, colorReset, message, formatElapsed(diff))
	} else {
		fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, formatElapsed(diff))
	}
}

// namespaceColor assigns a stable palette color to a namespace.
func namespaceColor(namespace string) string {
	if !debugColors || !stderrIsTTY {
		return ""
	}
	h := fnv.New32a()
	if _, err := h.Write([]byte(namespace)); err != nil {
		return ""
	}
	return palette[h.Sum32()%uint32(len(palette))]
}

// formatElapsed renders a duration compactly (e.g. "3ms", "1.2s", "2m").
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// enabledFor reports whether a namespace matches the comma-separated DEBUG
// patterns. Exclusion patterns (leading "-") take precedence.
func enabledFor(namespace, patterns string) bool {
	enabled := false
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if exclude, ok := strings.CutPrefix(pattern, "-"); ok {
			if matchPattern(namespace, exclude) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern checks a namespace against a single pattern, where "*"
// matches any run of characters.
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok && !strings.Contains(prefix, "*") {
		return strings.HasPrefix(namespace, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && !strings.Contains(suffix, "*") {
		return strings.HasSuffix(namespace, suffix)
	}
	parts := strings.SplitN(pattern, "*", 2)
	return strings.HasPrefix(namespace, parts[0]) && strings.HasSuffix(namespace, parts[1])
}
