package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field names the loader looks up on a commit document.
// Everything else passes through to the index untouched.
const (
	FieldNumber          = "number"
	FieldPatchSets       = "patchSets"
	FieldApprovals       = "approvals"
	FieldApprovalType    = "type"
	FieldApprovalsByType = "approvalsByType"
)

// Commit is one code-review change as exported by the metrics dump.
// Documents are schema-on-read: the loader only inspects the handful of
// fields it needs and indexes the rest verbatim.
type Commit map[string]any

// ID returns the document identifier derived from the commit's "number"
// field. Numbers decoded with json.Decoder.UseNumber arrive as json.Number,
// which keeps ids free of float formatting artifacts.
func (c Commit) ID() (string, error) {
	v, ok := c[FieldNumber]
	if !ok {
		return "", ErrMissingNumber
	}

	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case string:
		if n == "" {
			return "", ErrMissingNumber
		}
		return n, nil
	case float64:
		// Records built in code rather than decoded from JSON.
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(n), nil
	default:
		return "", fmt.Errorf("%w: number has type %T", ErrInvalidNumber, v)
	}
}
