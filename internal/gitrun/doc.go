// Package gitrun shells out to git on behalf of the commit-message pipeline.
//
// A [Git] is bound to one workspace root for its lifetime. All queries are
// thin argument templates over [Git.Run]: status lines, per-file diffs,
// changed-file names, aggregate stats, the current branch, and recent log
// entries. Failures are split into [ProcessError] (git could not be launched)
// and [CommandError] (git exited non-zero), so callers can degrade per call
// site.
package gitrun
