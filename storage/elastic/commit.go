package elastic

import (
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
	"github.com/poiesic/commitload/core"
	"github.com/poiesic/commitload/storage"
)

// IndexCommit writes one commit as a create-only document. A 409 conflict
// means the document was imported by an earlier run and is treated as a
// successful no-op, not a failure.
func (s *Store) IndexCommit(ctx context.Context, id string, commit core.Commit) (bool, error) {
	_, err := s.client.Index().
		Index(IndexName).
		Id(id).
		OpType("create").
		BodyJson(commit).
		Do(ctx)
	if err != nil {
		if elastic.IsConflict(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: id %s: %v", storage.ErrWriteFailed, id, err)
	}
	return true, nil
}
