package source

import "errors"

var (
	// ErrNoCommits indicates an export file without a "commits" array.
	ErrNoCommits = errors.New("export file has no commits array")
)
