// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"
	"time"

	"github.com/poiesic/commitload/core"
)

// CommitIndexer writes commit documents into the index.
// Implementations must be safe for concurrent use.
type CommitIndexer interface {
	// IndexCommit stores the commit under the given document id, create-only.
	// Returns created=false with a nil error when a document with that id
	// already exists; duplicates are the index's business, not the loader's.
	IndexCommit(ctx context.Context, id string, commit core.Commit) (created bool, err error)
}

// IndexAdmin manages the index lifecycle around a load.
type IndexAdmin interface {
	// EnsureIndex creates the commit index with its settings and mappings.
	// Creation is idempotent: an index that already exists is not an error.
	EnsureIndex(ctx context.Context) error

	// DeleteIndex removes the commit index.
	// Deleting an index that does not exist is not an error.
	DeleteIndex(ctx context.Context) error

	// Health waits up to timeout for the cluster to reach at least the given
	// status and returns the status it observed.
	Health(ctx context.Context, minStatus string, timeout time.Duration) (string, error)

	// Close releases the client and stops any background machinery.
	Close() error
}

// Store combines document writes with index administration.
type Store interface {
	CommitIndexer
	IndexAdmin
}
