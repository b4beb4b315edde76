package output

import (
	"encoding/json"
	"io"

	"github.com/dshills/comet/internal/generate"
)

// JSONWriter renders a result as a single JSON object, for scripting and
// editor integrations.
type JSONWriter struct{}

func (j *JSONWriter) Name() string { return "json" }

type jsonResult struct {
	RunID       string           `json:"runId"`
	Root        string           `json:"root"`
	Message     string           `json:"message"`
	Staged      bool             `json:"staged"`
	TokensUsed  int              `json:"tokensUsed,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

type jsonDiagnostic struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

func (j *JSONWriter) WriteResult(w io.Writer, res generate.Result) error {
	out := jsonResult{
		RunID:      res.RunID,
		Root:       res.Root,
		Message:    res.Message,
		Staged:     res.Staged,
		TokensUsed: res.TokensUsed,
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{Section: d.Section, Message: d.Message})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteFailure emits the structured failure object programmatic callers
// expect: an empty message plus the error text.
func WriteFailure(w io.Writer, errText string) error {
	out := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{Message: "", Error: errText}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
