package access

import (
	"errors"

	"github.com/dshills/comet/internal/gitrun"
)

// GitIgnoreEvaluator evaluates ignore rules by shelling `git check-ignore`
// against the bound workspace root. Exit code 0 means ignored, 1 means not
// ignored; anything else is a real failure.
type GitIgnoreEvaluator struct {
	run gitrun.Runner
}

// NewGitIgnoreEvaluator returns an evaluator backed by the given runner.
func NewGitIgnoreEvaluator(run gitrun.Runner) *GitIgnoreEvaluator {
	return &GitIgnoreEvaluator{run: run}
}

// Init verifies the runner can reach a repository.
func (e *GitIgnoreEvaluator) Init() error {
	_, err := e.run.Run("rev-parse", "--git-dir")
	return err
}

// Allowed reports whether relPath is NOT ignored.
func (e *GitIgnoreEvaluator) Allowed(relPath string) (bool, error) {
	_, err := e.run.Run("check-ignore", "-q", "--", relPath)
	if err == nil {
		return false, nil // exit 0: path is ignored
	}
	var cmdErr *gitrun.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
		return true, nil // exit 1: path is not ignored
	}
	return false, err
}

// Close releases the evaluator. The git-backed evaluator holds no state, but
// the interface contract requires explicit disposal by the owning assembler.
func (e *GitIgnoreEvaluator) Close() error {
	e.run = nil
	return nil
}
