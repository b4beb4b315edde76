package generate

import (
	"path/filepath"
	"strings"

	"github.com/dshills/comet/internal/gitrun"
)

// ResolveRoot picks the workspace root for a generation run. The directory
// the user invoked from wins when it sits inside a git repository; otherwise
// the configured workspace containing dir is used, then the first configured
// workspace. With nothing to go on, ErrNoRepository is returned.
func ResolveRoot(dir string, workspaces []string) (string, error) {
	if dir != "" {
		if root, err := gitrun.Toplevel(dir); err == nil {
			return root, nil
		}
		for _, ws := range workspaces {
			if ws != "" && containsPath(ws, dir) {
				return ws, nil
			}
		}
	}
	for _, ws := range workspaces {
		if ws != "" {
			return ws, nil
		}
	}
	return "", ErrNoRepository
}

// containsPath reports whether dir is root or lies under it.
func containsPath(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
