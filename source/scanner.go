package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/commitload/core"
)

// Scanner yields commit records from all export files matching a glob
// pattern. Each ForEach call re-expands the pattern and re-parses the files
// from scratch; within one call the file order is the lexicographic order
// returned by filepath.Glob and commits keep their array order.
type Scanner struct {
	pattern string
}

// NewScanner creates a scanner for the given file-glob pattern.
func NewScanner(pattern string) *Scanner {
	return &Scanner{pattern: pattern}
}

// exportFile is the shape of one metrics export document. Commits is a
// pointer so a file that parses but lacks the "commits" key can be told
// apart from one with an empty array.
type exportFile struct {
	Commits *[]core.Commit `json:"commits"`
}

// ForEach calls fn for every commit in every matching file, one file at a
// time. Iteration stops on the first error from fn, on context
// cancellation, or when a file fails to parse. A file that is not valid
// JSON or has no "commits" array aborts the scan before any of its records
// are yielded.
func (s *Scanner) ForEach(ctx context.Context, fn func(core.Commit) error) error {
	paths, err := filepath.Glob(s.pattern)
	if err != nil {
		return fmt.Errorf("bad input pattern %q: %w", s.pattern, err)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		commits, err := readExport(path)
		if err != nil {
			return err
		}

		for _, commit := range commits {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(commit); err != nil {
				return err
			}
		}
	}

	return nil
}

// readExport parses one export file and returns its commits.
func readExport(path string) ([]core.Commit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	// Keep numbers as json.Number so document ids and timestamps survive
	// the round trip without float conversion.
	dec.UseNumber()

	var export exportFile
	if err := dec.Decode(&export); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if export.Commits == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCommits, path)
	}

	return *export.Commits, nil
}
