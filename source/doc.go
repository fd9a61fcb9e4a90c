// Package source reads commit records out of code-review metrics export
// files.
//
// A metrics export is a JSON object with a top-level "commits" array. The
// Scanner expands a file-glob pattern, parses each matching file in turn,
// and yields the commits one at a time, so callers never hold more than one
// file's worth of records in memory. A malformed file aborts the scan: the
// loader would rather fail fast than ingest a partial dump.
package source
