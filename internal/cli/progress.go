package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/ngcomp/internal/extract"
)

// CLIProgressReporter shows extraction steps as a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	bar       *progressbar.ProgressBar
	startTime time.Time
	steps     int
}

// NewCLIProgressReporter creates a reporter writing to out.
func NewCLIProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
	}
}

func (c *CLIProgressReporter) OnExtractionStart(set *extract.ArtifactSet) {
	if c.quiet {
		return
	}
	c.startTime = time.Now()
	c.steps = 0

	c.bar = progressbar.NewOptions(extract.StepCount,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Extracting %s", set.Name.Classified)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnStepComplete(step extract.Step, path string) {
	if c.quiet || c.bar == nil {
		return
	}
	c.steps++
	c.bar.Describe(fmt.Sprintf("Wrote %s", step))
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnExtractionComplete(set *extract.ArtifactSet) {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintf(c.out, "✓ Extracted %s into %s (took %s)\n",
		set.Name.Classified, set.Dir, time.Since(c.startTime).Round(time.Millisecond))
}

// Steps returns how many steps completed in the current extraction.
func (c *CLIProgressReporter) Steps() int {
	return c.steps
}
