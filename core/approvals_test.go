package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeCommit builds a Commit the way the source package does, so the
// transform sees the same dynamic types it sees in production.
func decodeCommit(t *testing.T, raw string) Commit {
	t.Helper()

	var c Commit
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&c))
	return c
}

func TestSummarizeApprovals_LastPatchSetWins(t *testing.T) {
	c := decodeCommit(t, `{
		"number": 5,
		"patchSets": [
			{"approvals": [{"type": "CRVW", "value": "+1"}]},
			{"approvals": [
				{"type": "CRVW", "value": "-1"},
				{"type": "VRIF", "value": "+1"}
			]}
		]
	}`)

	c = c.SummarizeApprovals()

	byType, ok := c[FieldApprovalsByType].(map[string]any)
	require.True(t, ok, "approvalsByType should be attached")
	require.Len(t, byType, 2)

	crvw := byType["CRVW"].(map[string]any)
	assert.Equal(t, "-1", crvw["value"], "approvals must come from the last patch set")

	vrif := byType["VRIF"].(map[string]any)
	assert.Equal(t, "+1", vrif["value"])
}

func TestSummarizeApprovals_DuplicateTypeLastOccurrenceWins(t *testing.T) {
	c := decodeCommit(t, `{
		"number": 6,
		"patchSets": [
			{"approvals": [
				{"type": "CRVW", "value": "+1", "by": "alice"},
				{"type": "CRVW", "value": "+2", "by": "bob"}
			]}
		]
	}`)

	c = c.SummarizeApprovals()

	byType := c[FieldApprovalsByType].(map[string]any)
	require.Len(t, byType, 1)
	assert.Equal(t, "bob", byType["CRVW"].(map[string]any)["by"])
}

func TestSummarizeApprovals_PassThrough(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no patch sets", `{"number": 1}`},
		{"empty patch sets", `{"number": 2, "patchSets": []}`},
		{"last patch set without approvals", `{"number": 3, "patchSets": [{"ref": "refs/changes/3/1"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := decodeCommit(t, tc.raw)
			before := len(c)

			c = c.SummarizeApprovals()

			_, attached := c[FieldApprovalsByType]
			assert.False(t, attached, "record should pass through unmodified")
			assert.Len(t, c, before)
		})
	}
}

func TestSummarizeApprovals_EmptyApprovalsAttachesEmptyMap(t *testing.T) {
	c := decodeCommit(t, `{"number": 4, "patchSets": [{"approvals": []}]}`)

	c = c.SummarizeApprovals()

	byType, ok := c[FieldApprovalsByType].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, byType)
}

func TestSummarizeApprovals_SkipsMalformedEntries(t *testing.T) {
	c := decodeCommit(t, `{
		"number": 8,
		"patchSets": [
			{"approvals": ["bogus", {"value": "+1"}, {"type": "VRIF", "value": "+1"}]}
		]
	}`)

	c = c.SummarizeApprovals()

	byType := c[FieldApprovalsByType].(map[string]any)
	require.Len(t, byType, 1)
	assert.Contains(t, byType, "VRIF")
}
