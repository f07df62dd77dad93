// Package console provides styled message formatting for CLI output.
// Styling degrades to plain text when the output stream is not a terminal,
// so CI transcripts stay free of escape sequences.
package console

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	styled = term.IsTerminal(int(os.Stdout.Fd()))
)

func render(style lipgloss.Style, message string) string {
	if !styled {
		return message
	}
	return style.Render(message)
}

// FormatErrorMessage formats an error message for console output.
func FormatErrorMessage(message string) string {
	return render(errorStyle, "✗ "+message)
}

// FormatWarningMessage formats a warning message for console output.
func FormatWarningMessage(message string) string {
	return render(warningStyle, "⚠ "+message)
}

// FormatInfoMessage formats an informational message for console output.
func FormatInfoMessage(message string) string {
	return render(infoStyle, message)
}

// FormatSuccessMessage formats a success message for console output.
func FormatSuccessMessage(message string) string {
	return render(successStyle, "✓ "+message)
}

// FormatVerboseMessage formats a low-priority detail message, shown only
// when verbose output is requested.
func FormatVerboseMessage(message string) string {
	return render(verboseStyle, message)
}
