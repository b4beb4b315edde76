package gitrun

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultLogCount is the number of recent commits included in context.
const DefaultLogCount = 5

// Runner executes a version-control query and returns its stdout.
type Runner interface {
	Run(args ...string) (string, error)
}

// Git runs git commands against a fixed workspace root.
type Git struct {
	root string
}

// New returns a Git bound to the given workspace root.
func New(root string) *Git {
	return &Git{root: root}
}

// Root returns the workspace root this Git is bound to.
func (g *Git) Root() string { return g.root }

// Run executes git with the given argument vector. The working directory is
// the bound root, stdin is closed, and stdout/stderr are captured as text.
func (g *Git) Run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.root
	cmd.Stdin = nil
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), &CommandError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return "", &ProcessError{Err: err}
	}
	return string(out), nil
}

// StatusLines returns machine-parsable change lines, one per changed path:
// a status letter, whitespace, then the path relative to the root.
//
// Staged changes come from the index vs HEAD. Unstaged changes come from the
// working tree vs index, with untracked files appended as "?" lines so they
// parse the same way.
func (g *Git) StatusLines(staged bool) (string, error) {
	if staged {
		return g.Run("diff", "--cached", "--name-status")
	}
	out, err := g.Run("diff", "--name-status")
	if err != nil {
		return "", err
	}
	untracked, err := g.Run("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return out, nil // tracked changes alone are still usable
	}
	var b strings.Builder
	b.WriteString(out)
	for _, line := range strings.Split(untracked, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "?\t%s\n", line)
	}
	return b.String(), nil
}

// DiffFile returns the unified diff restricted to a single path.
func (g *Git) DiffFile(path string, staged bool) (string, error) {
	if staged {
		return g.Run("diff", "--cached", "--", path)
	}
	return g.Run("diff", "--", path)
}

// ChangedFiles returns the changed file names, one per line. This is cheaper
// than StatusLines and free of rename/copy metadata.
func (g *Git) ChangedFiles(staged bool) (string, error) {
	if staged {
		return g.Run("diff", "--cached", "--name-only")
	}
	return g.Run("diff", "--name-only")
}

// DiffStat returns the aggregate files/insertions/deletions summary.
func (g *Git) DiffStat(staged bool) (string, error) {
	if staged {
		return g.Run("diff", "--cached", "--stat")
	}
	return g.Run("diff", "--stat")
}

// Branch returns the current branch name.
func (g *Git) Branch() (string, error) {
	out, err := g.Run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RecentCommits returns the most recent n log entries in one-line form.
// n <= 0 uses DefaultLogCount.
func (g *Git) RecentCommits(n int) (string, error) {
	if n <= 0 {
		n = DefaultLogCount
	}
	return g.Run("log", "--oneline", fmt.Sprintf("-%d", n))
}

// Toplevel returns the repository root containing dir, or an error if dir is
// not inside a git repository.
func Toplevel(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &CommandError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return "", &ProcessError{Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}
