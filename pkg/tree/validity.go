package tree

import "github.com/goliatone/go-fmcompose/pkg/descriptor"

// Issue is a field-level problem that blocks submission.
type Issue struct {
	ID      string
	Label   string
	Message string
	Err     error
}

// Issues returns the problems found by the last recompute.
func (t *Tree) Issues() []Issue {
	return append([]Issue(nil), t.issues...)
}

// IssueFor returns the first issue attached to id.
func (t *Tree) IssueFor(id string) (Issue, bool) {
	for _, issue := range t.issues {
		if issue.ID == id {
			return issue, true
		}
	}
	return Issue{}, false
}

// LabelsValid reports whether every label-requiring descriptor has a valid
// label that is unique in its scope.
func (t *Tree) LabelsValid() bool {
	return len(t.issues) == 0
}

// Ready is the submission gate. extraFields counts fields contributed from
// outside the tree, such as a selected template.
func (t *Tree) Ready(extraFields int) bool {
	return t.LabelsValid() && (t.Len() > 0 || extraFields > 0)
}

func (t *Tree) recompute() {
	var issues []Issue
	t.root.Walk(func(node, _ *descriptor.Descriptor) bool {
		if !node.IsContainer() {
			return true
		}
		seen := make(map[string]bool, len(node.Children))
		for _, child := range node.Children {
			if !child.RequiresLabel() {
				continue
			}
			switch {
			case !descriptor.ValidLabel(child.Label):
				issues = append(issues, Issue{
					ID:      child.ID,
					Label:   child.Label,
					Message: descriptor.LabelMessage,
					Err:     descriptor.ErrInvalidLabel,
				})
			case seen[child.Label]:
				issues = append(issues, Issue{
					ID:      child.ID,
					Label:   child.Label,
					Message: DuplicateMessage,
					Err:     ErrDuplicateLabel,
				})
			default:
				seen[child.Label] = true
			}
		}
		return true
	})
	t.issues = issues
}
