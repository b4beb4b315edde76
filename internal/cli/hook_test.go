package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript(false)
	if !strings.Contains(script, hookMarkerStart) || !strings.Contains(script, hookMarkerEnd) {
		t.Errorf("script missing markers:\n%s", script)
	}
	if !strings.Contains(script, `comet generate --message-file "$1" || true`) {
		t.Errorf("script missing generate invocation:\n%s", script)
	}
	if !strings.Contains(script, "merge|squash") {
		t.Errorf("script does not skip sourced messages:\n%s", script)
	}

	stagedOnly := generateHookScript(true)
	if !strings.Contains(stagedOnly, "--staged-only") {
		t.Errorf("staged-only script missing flag:\n%s", stagedOnly)
	}
}

func TestReplaceCometSectionAppends(t *testing.T) {
	existing := "#!/bin/sh\necho custom hook\n"
	section := generateHookScript(false)

	got := replaceCometSection(existing, section)
	if !strings.Contains(got, "echo custom hook") {
		t.Errorf("existing hook content lost:\n%s", got)
	}
	if !strings.Contains(got, hookMarkerStart) {
		t.Errorf("section not appended:\n%s", got)
	}
}

func TestReplaceCometSectionReplacesInPlace(t *testing.T) {
	old := hookMarkerStart + "\nold command\n" + hookMarkerEnd + "\n"
	existing := "#!/bin/sh\necho before\n" + old + "echo after\n"
	section := generateHookScript(true)

	got := replaceCometSection(existing, section)
	if strings.Contains(got, "old command") {
		t.Errorf("old section survived:\n%s", got)
	}
	if !strings.Contains(got, "--staged-only") {
		t.Errorf("new section missing:\n%s", got)
	}
	if !strings.Contains(got, "echo before") || !strings.Contains(got, "echo after") {
		t.Errorf("surrounding content lost:\n%s", got)
	}
	if strings.Count(got, hookMarkerStart) != 1 {
		t.Errorf("expected exactly one section:\n%s", got)
	}
}

func TestRemoveCometSection(t *testing.T) {
	section := generateHookScript(false)
	existing := "#!/bin/sh\necho keep\n" + section

	got := removeCometSection(existing)
	if strings.Contains(got, hookMarkerStart) {
		t.Errorf("section not removed:\n%s", got)
	}
	if !strings.Contains(got, "echo keep") {
		t.Errorf("unrelated content removed:\n%s", got)
	}
}

func TestRemoveCometSectionNoSection(t *testing.T) {
	existing := "#!/bin/sh\necho keep\n"
	if got := removeCometSection(existing); got != existing {
		t.Errorf("content without a section changed: %q", got)
	}
}
