// Package source describes where templates and documents come from and the
// Loader contract used to fetch them.
package source
