package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the repo-local style file looked up when no explicit
// path is configured.
const DefaultFileName = ".comet.yaml"

// Rules describes how generated commit messages should be written.
type Rules struct {
	// Convention is the message convention: "conventional" (type: subject)
	// or "plain". Empty means conventional.
	Convention string `yaml:"convention,omitempty"`

	// MaxSubject limits the subject line length; 0 means no limit.
	MaxSubject int `yaml:"maxSubject,omitempty"`

	// Scopes restricts conventional-commit scopes to a fixed set.
	Scopes []string `yaml:"scopes,omitempty"`

	// Extra holds free-form directives appended to the prompt verbatim.
	Extra []string `yaml:"extra,omitempty"`
}

// Load reads rules from path. An empty path returns nil rules with no error.
// A missing file at the default lookup location is not an error either.
func Load(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading style file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing style file: %w", err)
	}
	return &rules, nil
}

// Resolve returns the style rules for a workspace: the configured path if
// set, else DefaultFileName under the workspace root.
func Resolve(root, configured string) (*Rules, error) {
	if configured != "" {
		return Load(configured)
	}
	return Load(filepath.Join(root, DefaultFileName))
}

// PromptSection renders the rules as prompt instructions. Nil rules render
// the built-in defaults.
func PromptSection(rules *Rules) string {
	var b strings.Builder

	convention := "conventional"
	maxSubject := 0
	if rules != nil {
		if rules.Convention != "" {
			convention = rules.Convention
		}
		maxSubject = rules.MaxSubject
	}

	switch convention {
	case "plain":
		b.WriteString("Write the subject as a plain imperative sentence without a type prefix.\n")
	default:
		b.WriteString("Use the Conventional Commits format: type(scope): subject, where type is one of feat, fix, docs, style, refactor, perf, test, build, ci, chore.\n")
	}
	if maxSubject > 0 {
		fmt.Fprintf(&b, "Keep the subject line at or under %d characters.\n", maxSubject)
	}
	if rules != nil && len(rules.Scopes) > 0 {
		fmt.Fprintf(&b, "Allowed scopes: %s. Use the closest match or omit the scope.\n",
			strings.Join(rules.Scopes, ", "))
	}
	if rules != nil {
		for _, extra := range rules.Extra {
			if extra = strings.TrimSpace(extra); extra != "" {
				b.WriteString(extra + "\n")
			}
		}
	}

	return b.String()
}
