package descriptor

import "strconv"

// PlaceholderPrefix starts every auto-generated array member label.
const PlaceholderPrefix = "item"

// PlaceholderLabel returns the next hidden label for a member of scope:
// `item<N>` where N is one more than the number of object/array children
// already in scope, bumped until no sibling uses the label.
func PlaceholderLabel(scope *Descriptor) string {
	n := 1
	if scope != nil {
		for _, child := range scope.Children {
			if child.IsContainer() {
				n++
			}
		}
	}
	for {
		label := PlaceholderPrefix + strconv.Itoa(n)
		if !labelTaken(scope, label) {
			return label
		}
		n++
	}
}

func labelTaken(scope *Descriptor, label string) bool {
	if scope == nil {
		return false
	}
	for _, child := range scope.Children {
		if child.Label == label {
			return true
		}
	}
	return false
}
