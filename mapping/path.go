package mapping

import "strings"

// PathSeparator joins the segments of a compound local field path.
const PathSeparator = "||"

// FieldPath is a chain of local field identifiers describing a route through
// nested referenced entities to a terminal field. A single-segment path names
// a field on the root entity directly; every non-terminal segment names a
// reference field whose target bundle carries the next segment. The chain
// always terminates at a non-reference field.
type FieldPath []string

// ParsePath splits a stored field path string into its segments.
func ParsePath(s string) FieldPath {
	if s == "" {
		return nil
	}
	return FieldPath(strings.Split(s, PathSeparator))
}

// String re-joins the path with the separator.
func (p FieldPath) String() string {
	return strings.Join(p, PathSeparator)
}

// IsCompound reports whether the path routes through referenced entities.
func (p FieldPath) IsCompound() bool {
	return len(p) > 1
}

// First returns the root segment.
func (p FieldPath) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Rest returns the path without its root segment.
func (p FieldPath) Rest() FieldPath {
	if len(p) <= 1 {
		return nil
	}
	return p[1:]
}

// Terminal returns the last segment, the real target field.
func (p FieldPath) Terminal() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}
