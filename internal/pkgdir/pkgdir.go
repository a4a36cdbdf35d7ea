// Package pkgdir locates the nearest enclosing package installation
// directory for a filesystem path, by walking toward the root until a
// directory containing a manifest file is found.
package pkgdir

import (
	"os"
	"path/filepath"

	"github.com/pkgwalk/pkgwalk/internal/manifest"
)

// Locator finds owning package directories. The zero value is ready to use.
type Locator struct{}

// FindOwningDir returns the nearest directory at or above path that contains
// a manifest file, or an empty string when no enclosing package exists.
// For a file path the search starts at the file's directory.
func (Locator) FindOwningDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	dir := abs
	if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if manifest.Exists(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
