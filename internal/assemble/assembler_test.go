package assemble

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// fakeVCS returns canned output per query, optionally failing everything.
type fakeVCS struct {
	status    string
	statusErr error
	files     string
	filesErr  error
	diffs     map[string]string
	diffErrs  map[string]error
	stat      string
	statErr   error
	branch    string
	branchErr error
	log       string
	logErr    error
}

func (f *fakeVCS) StatusLines(staged bool) (string, error) { return f.status, f.statusErr }

func (f *fakeVCS) DiffFile(path string, staged bool) (string, error) {
	if err, ok := f.diffErrs[path]; ok {
		return "", err
	}
	return f.diffs[path], nil
}

func (f *fakeVCS) ChangedFiles(staged bool) (string, error) { return f.files, f.filesErr }
func (f *fakeVCS) DiffStat(staged bool) (string, error)     { return f.stat, f.statErr }
func (f *fakeVCS) Branch() (string, error)                  { return f.branch, f.branchErr }
func (f *fakeVCS) RecentCommits(n int) (string, error)      { return f.log, f.logErr }

// failingVCS fails every query.
type failingVCS struct{}

var errAdapter = errors.New("adapter failure")

func (failingVCS) StatusLines(bool) (string, error)      { return "", errAdapter }
func (failingVCS) DiffFile(string, bool) (string, error) { return "", errAdapter }
func (failingVCS) ChangedFiles(bool) (string, error)     { return "", errAdapter }
func (failingVCS) DiffStat(bool) (string, error)         { return "", errAdapter }
func (failingVCS) Branch() (string, error)               { return "", errAdapter }
func (failingVCS) RecentCommits(int) (string, error)     { return "", errAdapter }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAssembler(root string, vcs VCS) *Assembler {
	return New(root, vcs, nil, Options{}, testLogger())
}

func TestAssemble_ParsesStatusLines(t *testing.T) {
	a := newTestAssembler("/repo", &fakeVCS{status: "M\tfile1.ts\nA\tfile2.ts\n"})

	changes := a.Assemble(BuildRequest{Staged: true})
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[0].Status != StatusModified {
		t.Errorf("changes[0].Status = %q, want Modified", changes[0].Status)
	}
	if changes[0].FilePath != filepath.Join("/repo", "file1.ts") {
		t.Errorf("changes[0].FilePath = %q", changes[0].FilePath)
	}
	if changes[1].Status != StatusAdded {
		t.Errorf("changes[1].Status = %q, want Added", changes[1].Status)
	}
	if changes[1].FilePath != filepath.Join("/repo", "file2.ts") {
		t.Errorf("changes[1].FilePath = %q", changes[1].FilePath)
	}
}

func TestAssemble_SkipsShortLines(t *testing.T) {
	a := newTestAssembler("/repo", &fakeVCS{status: "M\ta.go\nX\n\nD\tb.go\n"})

	changes := a.Assemble(BuildRequest{})
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2 (short lines skipped)", len(changes))
	}
}

func TestAssemble_StatusTable(t *testing.T) {
	tests := []struct {
		code byte
		want Status
	}{
		{'M', StatusModified},
		{'A', StatusAdded},
		{'D', StatusDeleted},
		{'R', StatusRenamed},
		{'C', StatusCopied},
		{'U', StatusUpdated},
		{'?', StatusUntracked},
		{'Z', StatusUnknown},
		{'m', StatusUnknown},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestAssemble_EmptyOutputIsEmptyList(t *testing.T) {
	a := newTestAssembler("/repo", &fakeVCS{status: "  \n"})
	if changes := a.Assemble(BuildRequest{}); len(changes) != 0 {
		t.Errorf("got %d changes from blank output, want 0", len(changes))
	}
}

func TestAssemble_AdapterErrorIsEmptyList(t *testing.T) {
	a := newTestAssembler("/repo", failingVCS{})
	if changes := a.Assemble(BuildRequest{Staged: true}); changes != nil {
		t.Errorf("got %v, want nil on adapter failure", changes)
	}
}

func TestBuildContext_FourSections(t *testing.T) {
	vcs := &fakeVCS{
		files:  "main.go\n",
		diffs:  map[string]string{"main.go": "diff --git a/main.go b/main.go\n+x"},
		stat:   " main.go | 1 +\n 1 file changed, 1 insertion(+)",
		branch: "main\n",
		log:    "abc123 init",
	}
	a := newTestAssembler("/repo", vcs)

	doc := a.BuildContext(nil, BuildRequest{})
	for _, heading := range []string{"## Full diff", "## Summary of changes", "## Current branch", "## Recent commits"} {
		if !strings.Contains(doc.Text, heading) {
			t.Errorf("document missing %q:\n%s", heading, doc.Text)
		}
	}
	if !strings.Contains(doc.Text, "```diff\n") {
		t.Error("diff body should be in a diff-labelled fence")
	}
	if !strings.Contains(doc.Text, "main") {
		t.Error("branch name missing from document")
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", doc.Diagnostics)
	}
}

func TestBuildContext_NeverFails(t *testing.T) {
	a := newTestAssembler("/repo", failingVCS{})

	doc := a.BuildContext(nil, BuildRequest{})
	if doc.Text == "" {
		t.Fatal("document should not be empty")
	}
	if got := strings.Count(doc.Text, placeholderBody); got != 4 {
		t.Errorf("got %d placeholder sections, want 4:\n%s", got, doc.Text)
	}
	if len(doc.Diagnostics) != 4 {
		t.Errorf("got %d diagnostics, want 4", len(doc.Diagnostics))
	}
}

func TestBuildContext_SectionFailureIsIsolated(t *testing.T) {
	vcs := &fakeVCS{
		files:     "main.go\n",
		diffs:     map[string]string{"main.go": "+x"},
		stat:      "1 file changed",
		branchErr: errAdapter,
		log:       "abc123 init",
	}
	a := newTestAssembler("/repo", vcs)

	doc := a.BuildContext(nil, BuildRequest{})
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Section != "Current branch" {
		t.Errorf("diagnostics = %v, want one for the branch section", doc.Diagnostics)
	}
	if !strings.Contains(doc.Text, "abc123 init") {
		t.Error("later sections should survive an earlier failure")
	}
}

func TestBuildContext_FilterSkipsLockfiles(t *testing.T) {
	vcs := &fakeVCS{
		files: "main.go\npackage-lock.json\n",
		diffs: map[string]string{
			"main.go":           "+code",
			"package-lock.json": "+lock noise",
		},
	}
	a := newTestAssembler("/repo", vcs)

	doc := a.BuildContext(nil, BuildRequest{})
	if strings.Contains(doc.Text, "lock noise") {
		t.Error("lockfile diff must not appear in the document")
	}
	if !strings.Contains(doc.Text, "+code") {
		t.Error("allowed file diff missing")
	}
}

func TestBuildContext_FileDiffErrorOmitsFile(t *testing.T) {
	vcs := &fakeVCS{
		files:    "good.go\nbad.go\n",
		diffs:    map[string]string{"good.go": "+good"},
		diffErrs: map[string]error{"bad.go": errAdapter},
	}
	a := newTestAssembler("/repo", vcs)

	doc := a.BuildContext(nil, BuildRequest{})
	if !strings.Contains(doc.Text, "+good") {
		t.Error("surviving file diff missing")
	}
	if len(doc.Diagnostics) != 0 {
		t.Errorf("per-file failures should not degrade the section: %v", doc.Diagnostics)
	}
}

func TestBuildContext_ProgressPerFile(t *testing.T) {
	vcs := &fakeVCS{
		files: "a.go\nb.go\nc.go\nd.go\n",
		diffs: map[string]string{"a.go": "+a", "b.go": "+b", "c.go": "+c", "d.go": "+d"},
	}
	a := newTestAssembler("/repo", vcs)

	var got []float64
	a.BuildContext(nil, BuildRequest{OnProgress: func(pct float64) { got = append(got, pct) }})

	want := []float64{25, 50, 75, 100}
	if len(got) != len(want) {
		t.Fatalf("got %d progress reports, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("progress[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuildContext_NoProgressWithoutFiles(t *testing.T) {
	a := newTestAssembler("/repo", &fakeVCS{files: "\n"})

	called := false
	a.BuildContext(nil, BuildRequest{OnProgress: func(float64) { called = true }})
	if called {
		t.Error("progress must not fire when the file list is empty")
	}
}

func TestBuildContext_TruncatesAtMaxDiffBytes(t *testing.T) {
	vcs := &fakeVCS{
		files: "big.go\n",
		diffs: map[string]string{"big.go": strings.Repeat("x", 500)},
	}
	a := New("/repo", vcs, nil, Options{MaxDiffBytes: 100}, testLogger())

	doc := a.BuildContext(nil, BuildRequest{})
	if !strings.Contains(doc.Text, "truncated") {
		t.Error("oversized diff should be truncated")
	}
}

func TestClose_ReleasesEvaluator(t *testing.T) {
	eval := &closableEvaluator{}
	a := New("/repo", &fakeVCS{}, eval, Options{}, testLogger())
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !eval.closed {
		t.Error("Close should dispose the owned evaluator")
	}
	// Second close is a no-op.
	if err := a.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}

type closableEvaluator struct{ closed bool }

func (c *closableEvaluator) Init() error                  { return nil }
func (c *closableEvaluator) Allowed(string) (bool, error) { return true, nil }
func (c *closableEvaluator) Close() error                 { c.closed = true; return nil }
