// Package pagetree walks a site's pages directory (plus mounted directories) and
// produces the flat, finalized list of pages with their section trees.
//
// Each directory is processed into an independent Result; sibling directories run
// concurrently and results are combined with Result.Merge, which is associative and
// never mutates its inputs. All ordering is imposed explicitly through numeric
// prefixes and ordering lists, never by read completion order.
package pagetree
