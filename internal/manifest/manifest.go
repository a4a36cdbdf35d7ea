// Package manifest reads the per-package metadata file (package.json) found
// in an installed package directory and returns a normalized record.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Filename is the conventional manifest filename inside a package directory.
const Filename = "package.json"

// ErrNotFound is returned when a directory has no manifest file.
var ErrNotFound = errors.New("manifest file not found")

// Manifest is the normalized content of a package manifest. A package with no
// entry point has an empty Main; that is not an error.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Main    string `json:"main,omitempty"`
}

// Read loads the manifest from the given package directory.
// If the manifest file does not exist, ErrNotFound is returned.
func Read(dir string) (Manifest, error) {
	return ReadFile(filepath.Join(dir, Filename))
}

// ReadFile loads a manifest from an explicit file path.
func ReadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, ErrNotFound
		}
		return Manifest{}, fmt.Errorf("reading manifest file: %w", err)
	}

	var m Manifest
	if unmarshalErr := json.Unmarshal(data, &m); unmarshalErr != nil {
		return Manifest{}, fmt.Errorf("parsing manifest file: %w", unmarshalErr)
	}
	return m, nil
}

// Exists reports whether dir contains a manifest file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, Filename))
	return err == nil && !info.IsDir()
}

// Write encodes m as indented JSON into dir. Used by test fixtures and the
// CLI's fixture generator; production scans only ever read manifests.
func Write(dir string, m Manifest) error {
	data, marshalErr := json.MarshalIndent(m, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("marshaling manifest: %w", marshalErr)
	}
	path := filepath.Join(dir, Filename)
	if writeErr := os.WriteFile(path, append(data, '\n'), 0600); writeErr != nil {
		return fmt.Errorf("writing manifest file: %w", writeErr)
	}
	return nil
}
