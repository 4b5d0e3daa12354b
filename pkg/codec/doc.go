// Package codec converts between the descriptor tree and the nested document.
//
// Flatten walks a token stream, the pre-order sequence of descriptors with an
// End marker closing every scope, and builds the ordered document with a
// stack of open scopes rooted at "main". Array scopes are coerced on close:
// composite members are pushed as they are, hidden placeholder scalars are
// pushed bare and named scalars become single-key objects.
//
// Unflatten goes the other way for flat form data: names such as
// `sections[0].title` or `seo.title` are split on dots and intermediate
// arrays are created whenever the next segment is all digits.
package codec
