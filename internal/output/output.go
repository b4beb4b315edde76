package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/comet/internal/generate"
)

// Writer renders a generation result to a stream.
type Writer interface {
	WriteResult(w io.Writer, res generate.Result) error
	Name() string
}

// GetWriter returns the writer for a format name.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteResult renders res in the given format to outPath, or to stdout when
// outPath is empty.
func WriteResult(res generate.Result, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writer.WriteResult(w, res)
}
