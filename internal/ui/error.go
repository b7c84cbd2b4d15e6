package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/pterm/pterm"
)

// ErrorFormatter provides consistent error formatting.
type ErrorFormatter struct {
	writer io.Writer
}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter(w io.Writer) *ErrorFormatter {
	return &ErrorFormatter{
		writer: w,
	}
}

// Format formats an error for display.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var smErr *smerrors.SmartMonitoringError
	if errors.As(err, &smErr) {
		return f.formatSmartMonitoringError(smErr)
	}

	return f.formatGenericError(err)
}

// formatSmartMonitoringError formats a SmartMonitoringError with its
// category badge, cause, and context. The cause chain is only expanded in
// verbose mode.
func (f *ErrorFormatter) formatSmartMonitoringError(err *smerrors.SmartMonitoringError) string {
	var sb strings.Builder

	badge := pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold).
		Sprintf(" %s ", strings.ToUpper(string(err.Category)))
	sb.WriteString(badge)
	sb.WriteString(" ")

	sb.WriteString(pterm.FgRed.Sprint(err.Message))
	sb.WriteString("\n")

	if !IsVerbose() {
		return sb.String()
	}

	if err.Cause != nil {
		sb.WriteString("\n")
		sb.WriteString(pterm.FgBlue.Sprint("Cause"))
		sb.WriteString(": ")
		sb.WriteString(err.Cause.Error())
		sb.WriteString("\n")
	}

	if len(err.Context) > 0 {
		sb.WriteString("\n")
		sb.WriteString(pterm.FgBlue.Sprint("Context"))
		sb.WriteString(":\n")
		for k, v := range err.Context {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", pterm.FgGray.Sprint(k), v))
		}
	}

	return sb.String()
}

// formatGenericError formats a regular error.
func (f *ErrorFormatter) formatGenericError(err error) string {
	return fmt.Sprintf("%s %s\n", pterm.FgRed.Sprint("✗"), err.Error())
}

// Write writes a formatted error to the writer.
func (f *ErrorFormatter) Write(err error) {
	if err == nil {
		return
	}
	fmt.Fprint(f.writer, f.Format(err))
}

// PrintError prints a formatted error using the global configuration.
func PrintError(err error) {
	if err == nil {
		return
	}

	formatter := NewErrorFormatter(ErrWriter())
	formatter.Write(err)
}

// FormatErrorBrief returns a brief one-line error message.
func FormatErrorBrief(err error) string {
	if err == nil {
		return ""
	}

	var smErr *smerrors.SmartMonitoringError
	if errors.As(err, &smErr) {
		return smErr.Error()
	}

	return err.Error()
}

// IsUserError returns true if the error is likely a user error (vs internal error).
func IsUserError(err error) bool {
	if err == nil {
		return false
	}

	var smErr *smerrors.SmartMonitoringError
	if errors.As(err, &smErr) {
		return smErr.Category != smerrors.CategoryInternal
	}

	return true
}
