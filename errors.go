package pkgwalk

import "errors"

// ErrNoSourceFile is returned when neither an explicit path nor a resolvable
// caller source file is available to scan from. It is terminal; a scan that
// fails this way is never retried.
var ErrNoSourceFile = errors.New("could not determine a source file to scan from")
