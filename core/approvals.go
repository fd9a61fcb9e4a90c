package core

// SummarizeApprovals attaches an approvals-by-type map built from the last
// patch set's approvals, so the index has a single-key-per-type view of the
// final review state. Later entries with the same type overwrite earlier
// ones. The commit is mutated in place and returned.
//
// The transform is permissive: a commit without patch sets, or whose last
// patch set carries no approvals field, passes through unchanged. An
// approvals field that is present but empty still attaches an empty map,
// matching the upstream export semantics.
func (c Commit) SummarizeApprovals() Commit {
	sets, ok := c[FieldPatchSets].([]any)
	if !ok || len(sets) == 0 {
		return c
	}

	last, ok := sets[len(sets)-1].(map[string]any)
	if !ok {
		return c
	}

	raw, ok := last[FieldApprovals]
	if !ok {
		return c
	}

	approvals, _ := raw.([]any)
	byType := make(map[string]any, len(approvals))
	for _, entry := range approvals {
		approval, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		approvalType, ok := approval[FieldApprovalType].(string)
		if !ok {
			continue
		}
		byType[approvalType] = approval
	}

	c[FieldApprovalsByType] = byType
	return c
}
