package elastic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/olivere/elastic/v7"
)

// IndexName is the index all commit documents are written to.
const IndexName = "gerrit-commits"

// commitIndexBody is the index schema: shard layout plus date mappings for
// the two epoch-second timestamp fields the dashboards aggregate on. All
// other commit fields are mapped dynamically.
var commitIndexBody = map[string]any{
	"settings": map[string]any{
		"index": map[string]any{
			"number_of_shards":   3,
			"number_of_replicas": 2,
		},
	},
	"mappings": map[string]any{
		"properties": map[string]any{
			"createdOn": map[string]any{
				"type":   "date",
				"format": "epoch_second",
			},
			"lastUpdated": map[string]any{
				"type":   "date",
				"format": "epoch_second",
			},
		},
	},
}

// EnsureIndex creates the commit index. A 400 response covers
// resource_already_exists_exception, which makes re-runs against a
// populated cluster a no-op.
func (s *Store) EnsureIndex(ctx context.Context) error {
	_, err := s.client.CreateIndex(IndexName).BodyJson(commitIndexBody).Do(ctx)
	if err != nil {
		if !elastic.IsStatusCode(err, http.StatusBadRequest) {
			return fmt.Errorf("failed to create index %s: %w", IndexName, err)
		}
		s.logger.Debug("index already exists", "index", IndexName)
	}
	return nil
}

// DeleteIndex drops the commit index. A missing index is not an error.
func (s *Store) DeleteIndex(ctx context.Context) error {
	_, err := s.client.DeleteIndex(IndexName).Do(ctx)
	if err != nil {
		if !elastic.IsNotFound(err) && !elastic.IsStatusCode(err, http.StatusBadRequest) {
			return fmt.Errorf("failed to delete index %s: %w", IndexName, err)
		}
		s.logger.Debug("index did not exist", "index", IndexName)
	}
	return nil
}

// Health waits up to timeout for the cluster to reach at least minStatus
// and returns the status it observed.
func (s *Store) Health(ctx context.Context, minStatus string, timeout time.Duration) (string, error) {
	resp, err := s.client.ClusterHealth().
		WaitForStatus(minStatus).
		Timeout(fmt.Sprintf("%dms", timeout.Milliseconds())).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("cluster health check failed: %w", err)
	}
	return resp.Status, nil
}
