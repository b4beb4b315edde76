package gitrun

import "fmt"

// ProcessError indicates git itself could not be launched (missing binary,
// permission failure). It is fatal to the calling workflow.
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("launching git: %v", e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// CommandError indicates git launched but exited non-zero. Callers decide
// whether to degrade; no retries happen at this layer.
type CommandError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("git exited with code %d: %s", e.ExitCode, e.Stderr)
}
