// Package caller identifies the external code that invoked a scan by walking
// the call stack and resolving each frame's source file to its owning
// package. Frames belonging to this module, the Go runtime, and any excluded
// packages are passed over.
package caller

import (
	"context"
	"runtime"
	"slices"
	"strings"

	"github.com/pkgwalk/pkgwalk/internal/logging"
	"github.com/pkgwalk/pkgwalk/internal/manifest"
	"github.com/pkgwalk/pkgwalk/internal/pkgdir"
)

// selfPrefix identifies this module's own frames; they are never candidates.
const selfPrefix = "github.com/pkgwalk/pkgwalk"

// maxStackDepth bounds the stack walk.
const maxStackDepth = 64

// CallSite describes one caller candidate: the source file of the frame and,
// when the file sits inside a package installation directory, that package's
// directory and manifest.
type CallSite struct {
	File string
	Dir  string
	Pkg  *manifest.Manifest
}

// Options controls a caller search.
type Options struct {
	// Limit caps the number of candidates returned; zero or negative means
	// all candidates.
	Limit int

	// Exclude lists owning-package names whose frames are passed over.
	Exclude []string

	// SkipPrefixes lists fully-qualified function prefixes (import paths)
	// whose frames are passed over, letting wrapping libraries hide their
	// own frames the same way this module hides its own.
	SkipPrefixes []string
}

// dirLocator is the subset of the ancestor locator the resolver needs.
type dirLocator interface {
	FindOwningDir(path string) string
}

// Resolver finds caller candidates on the current goroutine's stack.
type Resolver struct {
	// Locator resolves a source file to its owning package directory.
	// nil defaults to pkgdir.Locator.
	Locator dirLocator
}

// Find returns callers ordered from innermost to outermost frame. Only the
// first candidate is consumed by the scanner today; the full ordered sequence
// is returned to keep multi-candidate policies possible.
func (r Resolver) Find(ctx context.Context, opts Options) []CallSite {
	log := logging.FromContext(ctx)

	loc := r.Locator
	if loc == nil {
		loc = pkgdir.Locator{}
	}

	pcs := make([]uintptr, maxStackDepth)
	// Skip runtime.Callers and Find itself.
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sites []CallSite
	for {
		frame, more := frames.Next()
		if frame.File != "" && !skipFrame(frame.Function, opts.SkipPrefixes) {
			if site, ok := resolveFrame(loc, frame.File, opts.Exclude); ok {
				sites = append(sites, site)
				if opts.Limit > 0 && len(sites) >= opts.Limit {
					break
				}
			}
		}
		if !more {
			break
		}
	}

	log.Debug().
		Str("component", "caller").
		Int("candidates", len(sites)).
		Msg("caller resolution complete")

	return sites
}

// skipFrame reports whether a frame belongs to this module, the runtime, or
// a caller-skipped import path.
func skipFrame(fn string, skipPrefixes []string) bool {
	if fn == "" || strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, selfPrefix) {
		return true
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}

// resolveFrame maps a frame's file to a CallSite, applying name exclusions.
func resolveFrame(loc dirLocator, file string, exclude []string) (CallSite, bool) {
	site := CallSite{File: file}

	if dir := loc.FindOwningDir(file); dir != "" {
		m, err := manifest.Read(dir)
		if err == nil {
			if slices.Contains(exclude, m.Name) {
				return CallSite{}, false
			}
			site.Dir = dir
			site.Pkg = &m
		}
	}
	return site, true
}
