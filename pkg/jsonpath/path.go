package jsonpath

import "strings"

// Separator joins path segments when a path is rendered for people.
const Separator = "▹"

// Path is one position in a JSON document, expressed as the chain of keys
// (and array indexes) leading to it from the document root.
//
// A Path is immutable. Descend and ReplaceLast return new values that share
// their prefix with the receiver, so a handle passed into a recursive call
// can never be altered by its siblings. The nil *Path is valid and renders
// as the empty path.
type Path struct {
	parent  *Path
	segment string
	depth   int
}

// Root returns a single-segment path.
func Root(segment string) *Path {
	return &Path{segment: segment, depth: 1}
}

// Descend returns a path one level below p.
func (p *Path) Descend(segment string) *Path {
	if p == nil {
		return Root(segment)
	}
	return &Path{parent: p, segment: segment, depth: p.depth + 1}
}

// ReplaceLast returns a path at the same depth as p with its deepest segment
// swapped for segment. It is the sibling of p in the document.
func (p *Path) ReplaceLast(segment string) *Path {
	if p == nil || p.parent == nil {
		return Root(segment)
	}
	return p.parent.Descend(segment)
}

// Truncate returns p. Paths never carry anything below themselves, so there
// is nothing to drop; the method exists so callers can mark the end of a
// subtree explicitly.
func (p *Path) Truncate() *Path { return p }

// Parent returns the path one level up, or nil at the root.
func (p *Path) Parent() *Path {
	if p == nil {
		return nil
	}
	return p.parent
}

// Last returns the deepest segment, or "" for the nil path.
func (p *Path) Last() string {
	if p == nil {
		return ""
	}
	return p.segment
}

// Len returns the number of segments.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return p.depth
}

// Segments returns the segments from the root down to p.
// The returned slice is freshly allocated.
func (p *Path) Segments() []string {
	if p == nil {
		return []string{}
	}
	segs := make([]string, p.depth)
	for n := p; n != nil; n = n.parent {
		segs[n.depth-1] = n.segment
	}
	return segs
}

// String renders the path with [Separator], e.g. "sites▹s1▹factories▹f1".
func (p *Path) String() string {
	return Join(p.Segments())
}

// Join renders a segment list the same way [Path.String] does.
func Join(segments []string) string {
	return strings.Join(segments, Separator)
}

// FromSegments rebuilds a path from a segment list.
func FromSegments(segments []string) *Path {
	var p *Path
	for _, s := range segments {
		p = p.Descend(s)
	}
	return p
}
