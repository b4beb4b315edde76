package assemble

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dshills/comet/internal/access"
)

// VCS is the subset of version-control queries the assembler needs.
// *gitrun.Git satisfies it.
type VCS interface {
	StatusLines(staged bool) (string, error)
	DiffFile(path string, staged bool) (string, error)
	ChangedFiles(staged bool) (string, error)
	DiffStat(staged bool) (string, error)
	Branch() (string, error)
	RecentCommits(n int) (string, error)
}

// Options tunes context assembly.
type Options struct {
	// MaxDiffBytes caps the diff section; 0 means no cap.
	MaxDiffBytes int
	// LogCount is the number of recent commits to include; 0 uses the
	// adapter default.
	LogCount int
}

// Assembler builds change sets and context documents for one workspace root.
type Assembler struct {
	root   string
	vcs    VCS
	eval   access.IgnoreEvaluator
	filter *access.Filter
	opts   Options
	log    *slog.Logger
}

// New constructs an Assembler bound to root. The assembler takes ownership
// of eval and releases it on Close. eval may be nil.
func New(root string, vcs VCS, eval access.IgnoreEvaluator, opts Options, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		root:   root,
		vcs:    vcs,
		eval:   eval,
		filter: access.NewFilter(eval, logger),
		opts:   opts,
		log:    logger,
	}
}

// Root returns the workspace root this assembler is bound to.
func (a *Assembler) Root() string { return a.root }

// Close releases the owned ignore evaluator.
func (a *Assembler) Close() error {
	if a.eval == nil {
		return nil
	}
	err := a.eval.Close()
	a.eval = nil
	return err
}

// Assemble parses status output into an ordered change list. Failures are
// logged and converted to an empty list: generation degrades to "no changes
// detected" rather than surfacing an exception.
func (a *Assembler) Assemble(req BuildRequest) []Change {
	out, err := a.vcs.StatusLines(req.Staged)
	if err != nil {
		a.log.Warn("status query failed", "staged", req.Staged, "error", err)
		return nil
	}
	if strings.TrimSpace(out) == "" {
		return nil
	}

	var changes []Change
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 2 {
			continue
		}
		rel := strings.TrimSpace(line[1:])
		if rel == "" {
			continue
		}
		changes = append(changes, Change{
			FilePath: filepath.Join(a.root, rel),
			Status:   statusFor(line[0]),
		})
	}
	return changes
}
