package assemble

// Status classifies a changed file.
type Status string

const (
	StatusModified  Status = "Modified"
	StatusAdded     Status = "Added"
	StatusDeleted   Status = "Deleted"
	StatusRenamed   Status = "Renamed"
	StatusCopied    Status = "Copied"
	StatusUpdated   Status = "Updated"
	StatusUntracked Status = "Untracked"
	StatusUnknown   Status = "Unknown"
)

// statusFor maps a status letter from status output to a Status.
func statusFor(code byte) Status {
	switch code {
	case 'M':
		return StatusModified
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	case 'R':
		return StatusRenamed
	case 'C':
		return StatusCopied
	case 'U':
		return StatusUpdated
	case '?':
		return StatusUntracked
	default:
		return StatusUnknown
	}
}

// Change is one changed file in a single assembly pass.
type Change struct {
	// FilePath is the absolute path, workspace root joined with the
	// repository-relative path from status output.
	FilePath string
	Status   Status
}

// BuildRequest selects which changes to assemble and receives progress.
type BuildRequest struct {
	Staged bool
	// OnProgress, if set, receives a percentage in [0,100] as the diff
	// section processes each changed file.
	OnProgress func(pct float64)
}
