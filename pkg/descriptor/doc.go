// Package descriptor defines the editable unit of a frontmatter composition: a
// field descriptor carrying identity, a structural kind, a label, a value and,
// for containers, an ordered child list. Descriptors are plain values with
// identity; they never perform I/O and never query a render surface. The UI
// renders from them and mutates them through pkg/tree.
//
// Labels follow the `[A-Za-z0-9]+` rule. Containers that live directly inside
// an array scope may carry a hidden placeholder label (`item1`, `item2`, ...)
// that flatten discards. End markers (KindEnd) only exist in the flattened
// token stream produced by pkg/codec and are never part of an authored tree.
package descriptor
