package generate

import "errors"

// ErrNoRepository indicates no workspace root could be resolved for the
// invocation directory.
var ErrNoRepository = errors.New("no git repository found for the current directory")

// ErrNoChanges indicates neither the staged nor the unstaged change set
// produced anything to describe. The text is surfaced to the user as-is.
var ErrNoChanges = errors.New("No changes found to generate commit message")
