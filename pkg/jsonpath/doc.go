// Package jsonpath tracks where in a JSON document a value came from.
//
// A loader descends into a document one key at a time. Each step produces a
// new [Path] that remembers its parent, so any error raised deep inside the
// document can cite its exact location:
//
//	p := jsonpath.Root("sites")
//	p = p.Descend("site-A").Descend("factories").Descend("f1")
//	fmt.Println(p) // sites▹site-A▹factories▹f1
//
// Paths are persistent values: descending never mutates the parent, and
// iterating the keys of one object is just ReplaceLast on the previous
// sibling (or Descend on the shared parent). There is no shared cursor to
// reset between iterations.
//
// The segment list form ([Path.Segments]) is meant for programs, for
// example to locate a node again when writing a corrected document.
package jsonpath
