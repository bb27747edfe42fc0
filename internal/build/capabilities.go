package build

import (
	"os/exec"

	"git.home.luguber.info/inful/sitecontent/internal/pagetree"
)

// LookPathFunc reports whether a named binary is available.
type LookPathFunc func(name string) bool

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ProbeCapabilities detects optional tooling once per build.
func ProbeCapabilities(optimizer string, look LookPathFunc) pagetree.Capabilities {
	if look == nil {
		look = lookPath
	}
	return pagetree.Capabilities{
		ImageOptimizer: optimizer != "" && look(optimizer),
	}
}
