// Package errors holds the classified errors shared by the content builder.
//
// Configuration and mount errors raised before the walk are fatal. Parse and
// missing-content problems are recovered where they happen and counted as warnings.
//
//	err := errors.ConfigError("mount target overlaps pages directory").
//		WithContext("segment", "docs").
//		Build()
package errors
