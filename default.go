package pkgwalk

import "context"

// defaultScanner backs the package-level operations. Its caches are
// process-wide and persist until ClearCaches is called.
var defaultScanner = New()

// Scan runs a concurrent-mode scan on the default Scanner.
func Scan(ctx context.Context, opts ScanOptions) ([]PackageInfo, error) {
	return defaultScanner.Scan(ctx, opts)
}

// ScanSync runs a fully serial scan on the default Scanner.
func ScanSync(ctx context.Context, opts ScanOptions) ([]PackageInfo, error) {
	return defaultScanner.ScanSync(ctx, opts)
}

// ClearCaches resets the default Scanner's caches. Intended for test
// isolation, not normal operation.
func ClearCaches() {
	defaultScanner.ClearCaches()
}
