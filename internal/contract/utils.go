package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pynyc/tripmap/schema"
)

// Color variables for console output, one per density bucket.
var (
	VeryHighColor = color.New(color.FgRed, color.Bold)    // darkest tier
	HighColor     = color.New(color.FgRed)                // strong tier
	MediumColor   = color.New(color.FgMagenta)            // middle tier
	LowColor      = color.New(color.FgYellow)             // light tier
	MinimalColor  = color.New(color.FgHiBlack)            // no or little data
	HighlightMark = color.New(color.FgCyan, color.Bold)   // marks the selected layer
	NoticeColor   = color.New(color.FgYellow, color.Bold) // degraded state notices
)

// GetPlainLabel returns the plain text bucket label. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(b schema.Bucket) string {
	return b.Label()
}

// GetColorLabel returns a colored bucket label for console output (table).
func GetColorLabel(b schema.Bucket) string {
	text := GetPlainLabel(b)

	switch b {
	case schema.BucketVeryHigh:
		return VeryHighColor.Sprint(text)
	case schema.BucketHigh:
		return HighColor.Sprint(text)
	case schema.BucketMedium:
		return MediumColor.Sprint(text)
	case schema.BucketLow:
		return LowColor.Sprint(text)
	default:
		return MinimalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText truncates a value to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
