// Package content defines the site content document produced by the tree builder:
// pages, their nested sections, rich-document bodies, version metadata and the
// side tables consumed by translation, search and asset tooling.
//
// Values in this package are built once per run and treated as immutable afterwards.
package content
