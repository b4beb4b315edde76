package assemble

import (
	"fmt"
	"strings"

	"github.com/dshills/comet/internal/gitrun"
)

// errorNotice replaces the whole document if assembly itself panics. It must
// never propagate to the caller.
const errorNotice = "Error generating commit context."

const placeholderBody = "(unavailable)"

// Diagnostic records a section that degraded instead of aborting the build.
type Diagnostic struct {
	Section string
	Message string
}

// Document is the formatted context blob plus any degradation notes.
type Document struct {
	Text        string
	Diagnostics []Diagnostic
}

// section is the uniform result of one section builder.
type section struct {
	title string
	body  string
	err   error
}

// BuildContext renders the context document for the given request. Sections
// are built in fixed order and each degrades to a placeholder on failure; a
// failure in one never aborts the others.
func (a *Assembler) BuildContext(changes []Change, req BuildRequest) (doc Document) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("context assembly panicked", "panic", r)
			doc = Document{Text: errorNotice}
		}
	}()

	sections := []section{
		a.diffSection(req),
		a.statSection(req),
		a.branchSection(),
		a.logSection(),
	}

	var b strings.Builder
	for _, s := range sections {
		body := s.body
		if s.err != nil {
			a.log.Warn("context section degraded", "section", s.title, "error", s.err)
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{Section: s.title, Message: s.err.Error()})
			body = placeholderBody
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.title, body)
	}
	doc.Text = strings.TrimSpace(b.String())
	return doc
}

// diffSection recomputes the changed-file list directly from the adapter
// rather than from the parsed changes: the names-only query is cheaper and
// free of rename/copy metadata noise.
func (a *Assembler) diffSection(req BuildRequest) section {
	s := section{title: "Full diff"}

	out, err := a.vcs.ChangedFiles(req.Staged)
	if err != nil {
		s.err = err
		return s
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}

	var diffs []string
	for i, file := range files {
		if a.filter.Allowed(file) {
			d, err := a.vcs.DiffFile(file, req.Staged)
			if err != nil {
				a.log.Warn("skipping file diff", "path", file, "error", err)
			} else if d = strings.TrimSpace(d); d != "" {
				diffs = append(diffs, d)
			}
		}
		if req.OnProgress != nil && len(files) > 0 {
			req.OnProgress(float64(i+1) / float64(len(files)) * 100)
		}
	}

	joined := strings.Join(diffs, "\n")
	if a.opts.MaxDiffBytes > 0 && len(joined) > a.opts.MaxDiffBytes {
		joined = joined[:a.opts.MaxDiffBytes] + "\n... (diff truncated)"
	}
	s.body = fence("diff", joined)
	return s
}

func (a *Assembler) statSection(req BuildRequest) section {
	s := section{title: "Summary of changes"}
	out, err := a.vcs.DiffStat(req.Staged)
	if err != nil {
		s.err = err
		return s
	}
	s.body = fence("", strings.TrimSpace(out))
	return s
}

func (a *Assembler) branchSection() section {
	s := section{title: "Current branch"}
	branch, err := a.vcs.Branch()
	if err != nil {
		s.err = err
		return s
	}
	s.body = strings.TrimSpace(branch)
	return s
}

func (a *Assembler) logSection() section {
	s := section{title: "Recent commits"}
	n := a.opts.LogCount
	if n <= 0 {
		n = gitrun.DefaultLogCount
	}
	out, err := a.vcs.RecentCommits(n)
	if err != nil {
		s.err = err
		return s
	}
	s.body = fence("", strings.TrimSpace(out))
	return s
}

func fence(lang, body string) string {
	return "```" + lang + "\n" + body + "\n```"
}
