// Package fsglob wraps doublestar glob matching over a base directory.
//
// Patterns are doublestar-compatible (e.g. "node_modules/*/package.json").
// Matches are returned as slash-separated paths relative to the base
// directory, files only, in no guaranteed order; callers needing a stable
// order must sort.
package fsglob

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Searcher performs glob searches. The zero value is ready to use.
type Searcher struct{}

// Search returns every file beneath base whose relative path matches pattern.
func (Searcher) Search(ctx context.Context, base, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %q under %s: %w", pattern, base, err)
	}
	return matches, nil
}
