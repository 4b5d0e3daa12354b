package session

// State is the authoring lifecycle of a session.
type State int

const (
	// StateEmpty has no descriptors and no selected template.
	StateEmpty State = iota
	// StatePopulated has at least one descriptor or a selected template.
	StatePopulated
	// StateSubmitting is held while the composed document is written out.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}
