// Package report delivers formatted analysis results to their sinks.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

// Run identifies one analysis run
type Run struct {
	ID          string
	StartedAt   time.Time
	Version     string
	Format      string // Output format of the formatted text
	Extension   string // File extension for the formatted text
	SrcPath     string
	LocalesPath string
}

// Reporter is a side-effecting sink for a finished analysis. The analysis
// outcome never depends on a reporter succeeding.
type Reporter interface {
	Report(ctx context.Context, run Run, result analyzer.AnalysisResult, formatted string) error
}

// Stdout writes the formatted output to a writer
type Stdout struct {
	w io.Writer
}

// NewStdout creates a reporter writing to w
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

// Report writes formatted followed by a newline when it lacks one
func (s *Stdout) Report(ctx context.Context, _ Run, _ analyzer.AnalysisResult, formatted string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if formatted == "" {
		return nil
	}
	if formatted[len(formatted)-1] != '\n' {
		formatted += "\n"
	}
	if _, err := io.WriteString(s.w, formatted); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

var (
	_ Reporter = (*Stdout)(nil)
	_ Reporter = (*Files)(nil)
	_ Reporter = (*Metrics)(nil)
	_ Reporter = (*History)(nil)
)
