// Package watch rebuilds site content when source files change and, when an
// interval is configured, on a fixed schedule.
//
// Filesystem events are debounced; a change arriving while a build runs marks
// the build pending so exactly one follow-up build runs after it finishes.
package watch
