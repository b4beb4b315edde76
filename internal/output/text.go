package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dshills/comet/internal/generate"
)

// TextWriter renders a result for terminals. Color degrades automatically
// when the stream is not a TTY.
type TextWriter struct{}

func (t *TextWriter) Name() string { return "text" }

func (t *TextWriter) WriteResult(w io.Writer, res generate.Result) error {
	heading := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.Faint)

	source := "staged changes"
	if !res.Staged {
		source = "unstaged changes"
	}

	if _, err := heading.Fprintln(w, "Commit message"); err != nil {
		return err
	}
	dim.Fprintf(w, "%s · %s\n\n", res.Root, source)

	if _, err := fmt.Fprintln(w, res.Message); err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		dim.Fprintf(w, "\nnote: %s section unavailable (%s)\n", d.Section, d.Message)
	}
	return nil
}
