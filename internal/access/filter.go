package access

import (
	"log/slog"
	"path/filepath"
)

// lockfileNames are well-known dependency-lock manifests excluded from
// context by exact basename match, case-sensitive.
var lockfileNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"bun.lockb":         true,
	"composer.lock":     true,
	"Gemfile.lock":      true,
	"Cargo.lock":        true,
	"poetry.lock":       true,
	"Pipfile.lock":      true,
	"go.sum":            true,
}

// IgnoreEvaluator answers whether a path relative to the workspace root is
// ignored by version-control ignore rules.
type IgnoreEvaluator interface {
	Init() error
	Allowed(relPath string) (bool, error)
	Close() error
}

// Filter gates which changed files contribute diff content.
type Filter struct {
	eval IgnoreEvaluator
	log  *slog.Logger
}

// NewFilter returns a Filter over the given evaluator. The caller owns the
// evaluator's lifecycle and must have called Init on it.
func NewFilter(eval IgnoreEvaluator, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{eval: eval, log: logger}
}

// Allowed reports whether relPath's contents may appear in generated context.
func (f *Filter) Allowed(relPath string) bool {
	if IsLockfile(relPath) {
		return false
	}
	if f.eval == nil {
		return true
	}
	ok, err := f.eval.Allowed(relPath)
	if err != nil {
		// Fail open: include the file rather than drop diff content.
		f.log.Warn("ignore evaluation failed, including file", "path", relPath, "error", err)
		return true
	}
	return ok
}

// IsLockfile reports whether the path's basename is a known lockfile.
func IsLockfile(path string) bool {
	return lockfileNames[filepath.Base(path)]
}
