// Package export writes a finished SiteContent document to its sinks: the JSON
// document consumed by the renderer and an optional SQLite database for
// querying the tree.
package export
