package gitrun

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo creates a temp git repo with one commit and returns its path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "util.go"), []byte("package main\n\nfunc helper() {}\n"), 0o644)

	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	return dir
}

func TestRun_CapturesStdout(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	out, err := g.Run("rev-parse", "--show-toplevel")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("expected toplevel path on stdout")
	}
}

func TestRun_NonZeroExitIsCommandError(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	_, err := g.Run("rev-parse", "--verify", "no-such-ref")
	if err == nil {
		t.Fatal("expected error for bad ref")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type = %T, want *CommandError", err)
	}
	if cmdErr.ExitCode == 0 {
		t.Error("CommandError.ExitCode should be non-zero")
	}
	if cmdErr.Stderr == "" {
		t.Error("CommandError.Stderr should carry git's stderr text")
	}
}

func TestStatusLines_Staged(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println() }\n"), 0o644)
	if _, err := g.Run("add", "main.go"); err != nil {
		t.Fatalf("git add: %v", err)
	}

	out, err := g.StatusLines(true)
	if err != nil {
		t.Fatalf("StatusLines error: %v", err)
	}
	line := strings.TrimSpace(out)
	if !strings.HasPrefix(line, "M") || !strings.HasSuffix(line, "main.go") {
		t.Errorf("staged status line = %q, want M...main.go", line)
	}
}

func TestStatusLines_UnstagedIncludesUntracked(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	os.WriteFile(filepath.Join(dir, "util.go"), []byte("package main\n\nfunc helper() { _ = 1 }\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "new.go"), []byte("package main\n"), 0o644)

	out, err := g.StatusLines(false)
	if err != nil {
		t.Fatalf("StatusLines error: %v", err)
	}
	if !strings.Contains(out, "M\tutil.go") {
		t.Errorf("output missing modified line:\n%s", out)
	}
	if !strings.Contains(out, "?\tnew.go") {
		t.Errorf("output missing untracked line:\n%s", out)
	}
}

func TestStatusLines_CleanTreeIsEmpty(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	out, err := g.StatusLines(true)
	if err != nil {
		t.Fatalf("StatusLines error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected empty staged status, got %q", out)
	}
}

func TestDiffFile_RestrictedToPath(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println() }\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "util.go"), []byte("package main\n\nfunc helper() { _ = 1 }\n"), 0o644)

	out, err := g.DiffFile("main.go", false)
	if err != nil {
		t.Fatalf("DiffFile error: %v", err)
	}
	if !strings.Contains(out, "main.go") {
		t.Error("diff should mention main.go")
	}
	if strings.Contains(out, "util.go") {
		t.Error("diff should not include other changed files")
	}
}

func TestChangedFiles_NamesOnly(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println() }\n"), 0o644)

	out, err := g.ChangedFiles(false)
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	if strings.TrimSpace(out) != "main.go" {
		t.Errorf("ChangedFiles = %q, want main.go", strings.TrimSpace(out))
	}
}

func TestDiffStat(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() { println() }\n"), 0o644)

	out, err := g.DiffStat(false)
	if err != nil {
		t.Fatalf("DiffStat error: %v", err)
	}
	if !strings.Contains(out, "main.go") || !strings.Contains(out, "changed") {
		t.Errorf("unexpected stat output:\n%s", out)
	}
}

func TestBranch(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	branch, err := g.Branch()
	if err != nil {
		t.Fatalf("Branch error: %v", err)
	}
	if branch != "main" {
		t.Errorf("Branch = %q, want main", branch)
	}
}

func TestRecentCommits_DefaultCount(t *testing.T) {
	dir := setupTestRepo(t)
	g := New(dir)

	out, err := g.RecentCommits(0)
	if err != nil {
		t.Fatalf("RecentCommits error: %v", err)
	}
	if !strings.Contains(out, "init") {
		t.Errorf("log output missing initial commit:\n%s", out)
	}
}

func TestToplevel(t *testing.T) {
	dir := setupTestRepo(t)

	sub := filepath.Join(dir, "pkg")
	os.MkdirAll(sub, 0o755)

	root, err := Toplevel(sub)
	if err != nil {
		t.Fatalf("Toplevel error: %v", err)
	}
	// Resolve symlinks before comparing; macOS temp dirs live under /private.
	wantRoot, _ := filepath.EvalSymlinks(dir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("Toplevel = %q, want %q", gotRoot, wantRoot)
	}
}

func TestToplevel_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	_, err := Toplevel(t.TempDir())
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type = %T, want *CommandError", err)
	}
}
