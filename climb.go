package pkgwalk

import (
	"path/filepath"
	"strings"
)

// installRoot is the conventional directory name a package manager populates
// with dependent packages.
const installRoot = "node_modules"

// scopeMarker prefixes a directory grouping namespaced packages
// (e.g. node_modules/@group/name).
const scopeMarker = "@"

// installHost reports whether pkgDir is installed beneath an installation
// root and, if so, returns the directory hosting that root. A scope segment
// directly above the package is skipped before testing for the root, so both
// .../node_modules/name and .../node_modules/@group/name resolve to the same
// host.
func installHost(pkgDir string) (string, bool) {
	parent := filepath.Dir(pkgDir)
	if strings.HasPrefix(filepath.Base(parent), scopeMarker) {
		parent = filepath.Dir(parent)
	}
	if filepath.Base(parent) != installRoot {
		return "", false
	}
	return filepath.Dir(parent), true
}
