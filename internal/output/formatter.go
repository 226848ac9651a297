package output

import (
	"fmt"
	"os"
	"time"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/jenian/i18ngrd/internal/config"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Meta describes the run that produced a result
type Meta struct {
	GeneratedAt time.Time
	RunID       string
	Version     string
	SrcPath     string
	LocalesPath string
}

// Options controls rendering
type Options struct {
	Color   bool // ANSI colors in console output
	Verbose bool // Lift the per-section list limits
	Meta    Meta
	Config  *config.Config // Rendered by the config section; may be nil
}

// ColorSupported reports whether stdout is a terminal that accepts ANSI colors
func ColorSupported() bool {
	// Check if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	// On Windows, enable ANSI escape sequences (handled in formatter_windows.go)
	return enableANSI()
}

// Format renders result in the given format, limited to the requested
// sections. Formatters only select data; they never compute it.
func Format(result analyzer.AnalysisResult, format string, sections []string, opts Options) (string, error) {
	switch format {
	case "console", "":
		return formatConsole(result, sections, opts), nil
	case "json":
		return formatJSON(result, sections, opts)
	case "csv":
		return formatCSV(result, sections)
	case "xml":
		return formatXML(result, sections, opts)
	case "html":
		return formatHTML(result, sections, opts)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension used when saving a report
func Extension(format string) string {
	switch format {
	case "json", "csv", "xml", "html":
		return format
	default:
		return "txt"
	}
}

// FormatError formats an error message
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err)
}

func hasSection(sections []string, name string) bool {
	for _, s := range sections {
		if s == name {
			return true
		}
	}
	return false
}

func timestamp(meta Meta) string {
	if meta.GeneratedAt.IsZero() {
		return ""
	}
	return meta.GeneratedAt.UTC().Format(time.RFC3339)
}
