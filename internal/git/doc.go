// Package git reads commit metadata for the site being built so that each
// build can be traced back to the revision it was produced from.
package git
