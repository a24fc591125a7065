package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/streetrisk/schema"
)

// Color variables for console output.
var (
	VeryHighColor = color.New(color.FgRed, color.Bold)     // standard danger
	HighColor     = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	MediumColor   = color.New(color.FgYellow)              // standard caution, not bold
	LowColor      = color.New(color.FgCyan)                // informational / low-priority signal
)

// GetColorLabel returns a colored risk label for console output.
// When colors are disabled the plain label string is returned.
func GetColorLabel(label schema.RiskLabel, useColors bool) string {
	text := string(label)
	if !useColors {
		return text
	}

	switch label {
	case schema.VeryHighRisk:
		return VeryHighColor.Sprint(text)
	case schema.HighRisk:
		return HighColor.Sprint(text)
	case schema.MediumRisk:
		return MediumColor.Sprint(text)
	case schema.LowRisk:
		return LowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, falling back to os.Stdout when it is empty.
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

// LogStep logs orchestrator progress to stderr so table output on stdout
// stays machine-readable.
func LogStep(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}
