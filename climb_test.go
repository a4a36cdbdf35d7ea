package pkgwalk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstallHost(t *testing.T) {
	tests := []struct {
		name     string
		pkgDir   string
		wantHost string
		wantOk   bool
	}{
		{
			name:     "unscoped package",
			pkgDir:   filepath.Join("/app", "node_modules", "foo"),
			wantHost: "/app",
			wantOk:   true,
		},
		{
			name:     "scoped package skips scope segment",
			pkgDir:   filepath.Join("/app", "node_modules", "@fu", "fizz"),
			wantHost: "/app",
			wantOk:   true,
		},
		{
			name:     "nested installation",
			pkgDir:   filepath.Join("/app", "node_modules", "foo", "node_modules", "bar"),
			wantHost: filepath.Join("/app", "node_modules", "foo"),
			wantOk:   true,
		},
		{
			name:   "not under an installation root",
			pkgDir: filepath.Join("/app", "packages", "foo"),
			wantOk: false,
		},
		{
			name:   "scope directory without installation root above",
			pkgDir: filepath.Join("/app", "@fu", "fizz"),
			wantOk: false,
		},
		{
			name:     "installation root at filesystem root",
			pkgDir:   filepath.Join("/", "node_modules", "foo"),
			wantHost: "/",
			wantOk:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, ok := installHost(tt.pkgDir)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, filepath.Clean(tt.wantHost), host)
			}
		})
	}
}
