package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgwalk/pkgwalk"
	"github.com/pkgwalk/pkgwalk/internal/manifest"
)

// fixtureTree builds a base package with two installed dependencies and
// returns the base directory.
func fixtureTree(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "app")

	write := func(dir string, m manifest.Manifest) {
		require.NoError(t, os.MkdirAll(dir, 0750))
		require.NoError(t, manifest.Write(dir, m))
	}
	write(base, manifest.Manifest{Name: "app", Version: "1.0.0", Main: "index.js"})
	write(filepath.Join(base, "node_modules", "lodash"),
		manifest.Manifest{Name: "lodash", Version: "4.17.21", Main: "lodash.js"})
	write(filepath.Join(base, "node_modules", "left-pad"),
		manifest.Manifest{Name: "left-pad", Version: "1.3.0"})
	return base
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(pkgwalk.ClearCaches)

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCmd_Table(t *testing.T) {
	base := fixtureTree(t)

	out, err := runCommand(t, "list", "--path", base)
	require.NoError(t, err)

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "lodash")
	assert.Contains(t, out, "4.17.21")
	assert.Contains(t, out, "left-pad")
	assert.Contains(t, out, "app")
	// left-pad has no entry point; the table shows a placeholder.
	assert.Contains(t, out, "-")
}

func TestListCmd_JSON(t *testing.T) {
	base := fixtureTree(t)

	out, err := runCommand(t, "list", "--path", base, "--json")
	require.NoError(t, err)

	var pkgs []pkgwalk.PackageInfo
	require.NoError(t, json.Unmarshal([]byte(out), &pkgs))
	require.Len(t, pkgs, 3)
	// Deterministic manifest-path order: dependencies first, base last.
	assert.Equal(t, "left-pad", pkgs[0].Name)
	assert.Equal(t, "lodash", pkgs[1].Name)
	assert.Equal(t, "app", pkgs[2].Name)
}

func TestListCmd_Match(t *testing.T) {
	base := fixtureTree(t)

	out, err := runCommand(t, "list", "--path", base, "--match", "lodash@^4.0.0", "--json")
	require.NoError(t, err)

	var pkgs []pkgwalk.PackageInfo
	require.NoError(t, json.Unmarshal([]byte(out), &pkgs))
	require.Len(t, pkgs, 1)
	assert.Equal(t, "lodash", pkgs[0].Name)

	t.Run("no match", func(t *testing.T) {
		out, err := runCommand(t, "list", "--path", base, "--match", "lodash@^5.0.0", "--json")
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal([]byte(out), &pkgs))
		assert.Empty(t, pkgs)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := runCommand(t, "list", "--path", base, "--match", "lodash")
		assert.Error(t, err)
	})
}

func TestListCmd_EmptyDir(t *testing.T) {
	out, err := runCommand(t, "list", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No packages found.")
}

func TestListCmd_ConfigDefaults(t *testing.T) {
	base := fixtureTree(t)
	inner := filepath.Join(base, "node_modules", "lodash")

	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scan:\n  include_parents: true\n"), 0640))

	out, err := runCommand(t, "list", "--path", inner, "--config", cfgPath, "--json")
	require.NoError(t, err)

	var pkgs []pkgwalk.PackageInfo
	require.NoError(t, json.Unmarshal([]byte(out), &pkgs))
	// include_parents from the config climbs from lodash to the app base.
	assert.Len(t, pkgs, 3)
}

func TestRootCmd_Version(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
