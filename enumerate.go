package pkgwalk

import (
	"context"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pkgwalk/pkgwalk/internal/logging"
	"github.com/pkgwalk/pkgwalk/internal/manifest"
)

// enumPatterns match manifests of unscoped and scoped packages at any depth
// beneath an installation root. The underlying search gives no ordering
// guarantee; enumerate sorts.
var enumPatterns = [...]string{
	"**/" + installRoot + "/*/" + manifest.Filename,
	"**/" + installRoot + "/" + scopeMarker + "*/*/" + manifest.Filename,
}

// enumerate lists every installed sub-package manifest beneath base, plus
// base's own manifest when base is itself a package directory. Results are
// absolute paths in lexicographic relative-path order, memoized per base
// directory. In concurrent mode the two patterns are searched in parallel.
func (s *Scanner) enumerate(ctx context.Context, base string, concurrent bool) ([]string, error) {
	log := logging.FromContext(ctx)

	if cached, ok := s.manifestPaths.Get(base); ok {
		log.Debug().
			Str("component", "scanner").
			Str("operation", "enumerate").
			Str("base_dir", base).
			Msg("manifest path cache hit")
		return cached, nil
	}

	var matches [len(enumPatterns)][]string
	if concurrent {
		g, gCtx := errgroup.WithContext(ctx)
		for i, pattern := range enumPatterns {
			g.Go(func() error {
				found, err := s.searcher.Search(gCtx, base, pattern)
				if err != nil {
					return err
				}
				matches[i] = found
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, pattern := range enumPatterns {
			found, err := s.searcher.Search(ctx, base, pattern)
			if err != nil {
				return nil, err
			}
			matches[i] = found
		}
	}

	var rel []string
	for _, found := range matches {
		rel = append(rel, found...)
	}

	// The base package's own manifest joins the list when base is itself an
	// installation directory.
	if s.locator.FindOwningDir(base) == base {
		rel = append(rel, manifest.Filename)
	}

	// Deterministic ordering across platforms and glob implementations.
	sort.Strings(rel)

	paths := make([]string, len(rel))
	for i, r := range rel {
		paths[i] = filepath.Join(base, filepath.FromSlash(r))
	}

	s.manifestPaths.Set(base, paths)
	return paths, nil
}
