// Package pkgwalk resolves, for a calling module, the set of installed
// packages reachable from it on disk. It walks the host installation layout
// (package directories nested under node_modules directories) instead of
// parsing dependency manifests, giving library authors runtime visibility
// into what is actually installed alongside them — plugin discovery,
// compatibility checks, and the like.
//
// The package-level Scan and ScanSync operate on a shared default Scanner
// whose caches persist for the process lifetime; ClearCaches resets them for
// test isolation. Independent configurations can construct their own Scanner
// with New.
package pkgwalk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgwalk/pkgwalk/internal/cache"
	"github.com/pkgwalk/pkgwalk/internal/caller"
	"github.com/pkgwalk/pkgwalk/internal/fsglob"
	"github.com/pkgwalk/pkgwalk/internal/logging"
	"github.com/pkgwalk/pkgwalk/internal/manifest"
	"github.com/pkgwalk/pkgwalk/internal/pkgdir"
)

// Version is the library version, exposed for diagnostics.
const Version = "0.3.0"

// selfName is this library's package name, always excluded from caller
// resolution so a scan never resolves to pkgwalk itself.
const selfName = "pkgwalk"

// PackageInfo describes one installed package. Two records with identical
// fields are the same package; result deduplication relies on that.
type PackageInfo struct {
	// Directory is the package's installation directory (absolute).
	Directory string `json:"directory"`

	// Name and Version come from the package manifest.
	Name    string `json:"name"`
	Version string `json:"version"`

	// Main is the manifest's entry point, or empty when the manifest
	// declares none.
	Main string `json:"main,omitempty"`
}

// CallSite is one caller candidate: the source file of a stack frame and,
// when known, the package owning that file.
type CallSite struct {
	File string
	Pkg  *PackageInfo
}

// CallerOptions is forwarded to the caller resolver. The scanner always
// overrides Limit to 1 and injects its own name into Exclude.
type CallerOptions struct {
	// Limit caps the number of candidates; zero means all.
	Limit int

	// Exclude lists package names whose frames are passed over.
	Exclude []string

	// SkipPrefixes lists import-path prefixes whose frames are passed over.
	SkipPrefixes []string
}

// ScanOptions controls a single scan. The zero value scans from the caller's
// location without climbing.
type ScanOptions struct {
	// IncludeParents climbs to the outermost owning package before
	// enumerating, so a scan started inside a dependency sees the full
	// installation tree it belongs to.
	IncludeParents bool

	// Caller is forwarded to the caller resolver.
	Caller CallerOptions

	// Path is an explicit file or directory to scan from, bypassing
	// caller resolution.
	Path string
}

// Locator finds the nearest enclosing package installation directory for a
// path. An empty result means no enclosing package exists.
type Locator interface {
	FindOwningDir(path string) string
}

// CallerResolver identifies the external code that invoked a scan, returning
// candidates ordered from innermost to outermost frame. Only the first is
// consumed today; the ordered sequence keeps multi-candidate policies open.
type CallerResolver interface {
	FindCallers(ctx context.Context, opts CallerOptions) []CallSite
}

// Searcher runs a glob search beneath a base directory, returning matching
// file paths relative to it, in no guaranteed order.
type Searcher interface {
	Search(ctx context.Context, base, pattern string) ([]string, error)
}

// Scanner performs installed-package scans. It owns two caches keyed by raw
// directory path: enumerated manifest paths per base directory, and climb
// results per package directory. Both are unbounded and assume the installed
// layout does not change while the process runs.
type Scanner struct {
	locator  Locator
	callers  CallerResolver
	searcher Searcher

	manifestPaths *cache.PathCache[[]string]
	ancestors     *cache.PathCache[string]
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLocator replaces the ancestor package locator.
func WithLocator(l Locator) Option {
	return func(s *Scanner) { s.locator = l }
}

// WithCallerResolver replaces the caller resolver.
func WithCallerResolver(r CallerResolver) Option {
	return func(s *Scanner) { s.callers = r }
}

// WithSearcher replaces the glob search primitive.
func WithSearcher(g Searcher) Option {
	return func(s *Scanner) { s.searcher = g }
}

// New creates a Scanner with fresh caches and default collaborators.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		locator:       pkgdir.Locator{},
		callers:       stackResolver{},
		searcher:      fsglob.Searcher{},
		manifestPaths: cache.NewPathCache[[]string](),
		ancestors:     cache.NewPathCache[string](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan resolves the base directory, enumerates installed packages beneath it,
// and returns their deduplicated records in lexicographic manifest-path
// order. The two enumeration glob patterns run concurrently; everything else
// follows the same strict sequence as ScanSync.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions) ([]PackageInfo, error) {
	return s.scan(ctx, opts, true)
}

// ScanSync is Scan with every sub-operation performed serially on the
// calling goroutine.
func (s *Scanner) ScanSync(ctx context.Context, opts ScanOptions) ([]PackageInfo, error) {
	return s.scan(ctx, opts, false)
}

// ClearCaches resets both caches. Intended for test harnesses; a cleared
// cache never changes scan results, only their latency.
func (s *Scanner) ClearCaches() {
	s.manifestPaths.Clear()
	s.ancestors.Clear()
}

// scan is the single algorithm behind both entry points; concurrent selects
// the execution mode at the glob leaf.
func (s *Scanner) scan(ctx context.Context, opts ScanOptions, concurrent bool) ([]PackageInfo, error) {
	log := logging.FromContext(ctx)

	base, err := s.resolveBaseDir(ctx, opts)
	if err != nil {
		return nil, err
	}

	paths, err := s.enumerate(ctx, base, concurrent)
	if err != nil {
		return nil, err
	}

	seen := make(map[PackageInfo]struct{}, len(paths))
	infos := make([]PackageInfo, 0, len(paths))
	for _, p := range paths {
		m, readErr := manifest.ReadFile(p)
		if readErr != nil {
			return nil, fmt.Errorf("reading manifest %s: %w", p, readErr)
		}
		info := PackageInfo{
			Directory: filepath.Dir(p),
			Name:      m.Name,
			Version:   m.Version,
			Main:      m.Main,
		}
		if _, dup := seen[info]; dup {
			continue
		}
		seen[info] = struct{}{}
		infos = append(infos, info)
	}

	log.Debug().
		Str("component", "scanner").
		Str("base_dir", base).
		Int("packages", len(infos)).
		Bool("concurrent", concurrent).
		Msg("scan complete")

	return infos, nil
}

// resolveBaseDir produces the single starting directory for a scan, from the
// explicit path option or from the caller's location. When the target file
// has no owning package, the file's own directory (or its parent, for a
// plain file) is the base and IncludeParents is ignored.
func (s *Scanner) resolveBaseDir(ctx context.Context, opts ScanOptions) (string, error) {
	var file, pkgDir string

	if opts.Path != "" {
		file = opts.Path
		pkgDir = s.locator.FindOwningDir(opts.Path)
	} else {
		copts := opts.Caller
		copts.Limit = 1
		copts.Exclude = append([]string{selfName}, copts.Exclude...)
		sites := s.callers.FindCallers(ctx, copts)
		if len(sites) > 0 {
			file = sites[0].File
			if sites[0].Pkg != nil {
				pkgDir = sites[0].Pkg.Directory
			}
		}
	}

	if file == "" {
		return "", ErrNoSourceFile
	}

	if pkgDir == "" {
		if abs, absErr := filepath.Abs(file); absErr == nil {
			file = abs
		}
		if info, err := os.Stat(file); err == nil && info.IsDir() {
			return file, nil
		}
		return filepath.Dir(file), nil
	}

	if !opts.IncludeParents {
		return pkgDir, nil
	}
	return s.outermostDir(pkgDir), nil
}

// outermostDir climbs from a package directory to the highest-level owning
// package: as long as the current directory sits under an installation root,
// the package hosting that root becomes the new candidate. The climb prefers
// the outermost directory found and never downgrades; each level's final
// result is cached.
func (s *Scanner) outermostDir(dir string) string {
	if v, ok := s.ancestors.Get(dir); ok {
		return v
	}

	result := dir
	if host, ok := installHost(dir); ok {
		if owner := s.locator.FindOwningDir(host); owner != "" {
			result = s.outermostDir(owner)
		}
	}

	s.ancestors.Set(dir, result)
	return result
}

// stackResolver adapts the internal stack-walking resolver to the public
// CallerResolver interface.
type stackResolver struct{}

func (stackResolver) FindCallers(ctx context.Context, opts CallerOptions) []CallSite {
	var r caller.Resolver
	found := r.Find(ctx, caller.Options{
		Limit:        opts.Limit,
		Exclude:      opts.Exclude,
		SkipPrefixes: opts.SkipPrefixes,
	})

	sites := make([]CallSite, 0, len(found))
	for _, f := range found {
		site := CallSite{File: f.File}
		if f.Pkg != nil {
			site.Pkg = &PackageInfo{
				Directory: f.Dir,
				Name:      f.Pkg.Name,
				Version:   f.Pkg.Version,
				Main:      f.Pkg.Main,
			}
		}
		sites = append(sites, site)
	}
	return sites
}
