package tree

import "errors"

var (
	// ErrInvalidMove is returned when a move would create a cycle or names a
	// source scope that does not own the node. The tree is left unchanged.
	ErrInvalidMove = errors.New("tree: invalid move")
	// ErrNotContainer is returned when a scope id names a scalar or list.
	ErrNotContainer = errors.New("tree: scope is not a container")
	// ErrNotFound is returned for unknown descriptor ids.
	ErrNotFound = errors.New("tree: descriptor not found")
	// ErrDuplicateID is returned when inserting a descriptor whose id is
	// already in the tree.
	ErrDuplicateID = errors.New("tree: descriptor already in tree")
	// ErrDuplicateLabel is reported through Issues when two siblings share a
	// label.
	ErrDuplicateLabel = errors.New("tree: duplicate label")
)

// DuplicateMessage is the field-level message for a label used twice in one
// scope.
const DuplicateMessage = "Label must be unique within its group"
