// Package build runs one content build end to end: resolve mounts, walk the
// pages tree, assemble the SiteContent document and hand it to the configured
// sinks. Both the build and watch commands route through Service.
package build
