// Package routes joins and splits page routes. Routes are slash-separated, start with
// "/" and never end with one except for the root route itself. A directory base of
// "" stands for the root.
package routes

import (
	"strings"
)

// Root is the route of the site's home page.
const Root = "/"

// Join appends a segment to a directory base.
func Join(base, segment string) string {
	return strings.TrimSuffix(base, "/") + "/" + segment
}

// Display turns a directory base into a route: "" becomes "/".
func Display(base string) string {
	if base == "" || base == Root {
		return Root
	}
	return base
}

// Base is the inverse of Display: the root route becomes "".
func Base(route string) string {
	if route == Root {
		return ""
	}
	return strings.TrimSuffix(route, "/")
}

// Segments splits a route into its non-empty segments.
func Segments(route string) []string {
	return strings.FieldsFunc(route, func(r rune) bool { return r == '/' })
}

// Parent drops the last segment. Routes with fewer than two segments have no parent
// route and return false.
func Parent(route string) (string, bool) {
	segs := Segments(route)
	if len(segs) < 2 {
		return "", false
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/"), true
}
