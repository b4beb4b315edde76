package generate

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// Sink receives a generated commit message.
type Sink interface {
	SetValue(message string) error
	Name() string
}

// FileSink writes the message into a commit message file, as used by the
// prepare-commit-msg hook. Existing content (the commented status template
// git seeds the file with) is preserved below the message.
type FileSink struct {
	Path string
}

func (s *FileSink) Name() string { return "message file" }

func (s *FileSink) SetValue(message string) error {
	existing, err := os.ReadFile(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading message file: %w", err)
	}

	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n")
	if rest := strings.TrimLeft(string(existing), "\n"); rest != "" {
		b.WriteString("\n")
		b.WriteString(rest)
	}

	if err := os.WriteFile(s.Path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing message file: %w", err)
	}
	return nil
}

// ClipboardSink copies the message to the system clipboard.
type ClipboardSink struct{}

func (s *ClipboardSink) Name() string { return "clipboard" }

func (s *ClipboardSink) SetValue(message string) error {
	if err := clipboard.WriteAll(message); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
