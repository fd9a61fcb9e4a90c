package ingestion

import "errors"

var (
	// ErrIndexerRequired is returned when a commit indexer is not provided.
	ErrIndexerRequired = errors.New("commit indexer required")
)
