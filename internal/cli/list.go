package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkgwalk/pkgwalk"
	"github.com/pkgwalk/pkgwalk/internal/config"
	"github.com/pkgwalk/pkgwalk/internal/logging"
)

// newListCmd creates the "list" command, which scans from the working
// directory (or --path) and prints every installed package found.
func newListCmd(cfg *config.Config) *cobra.Command {
	var (
		parents    bool
		path       string
		exclude    []string
		jsonOutput bool
		match      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Long:  "List all packages installed beneath the scan base directory, in deterministic manifest-path order",
		Example: `  # List packages installed under the current directory
  pkgwalk list --path .

  # Climb to the outermost owning package first
  pkgwalk list --path . --parents

  # Keep only lodash versions compatible with 4.x
  pkgwalk list --path . --match lodash@^4.0.0 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := pkgwalk.ScanOptions{
				IncludeParents: parents || cfg.Scan.IncludeParents,
				Path:           path,
				Caller: pkgwalk.CallerOptions{
					Exclude: append(append([]string{}, cfg.Scan.Exclude...), exclude...),
				},
			}

			pkgs, err := pkgwalk.Scan(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("scanning packages: %w", err)
			}

			if match != "" {
				pkgs, err = applyMatch(cmd, pkgs, match)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, pkgs)
			}
			return displayPackages(cmd, pkgs)
		},
	}

	cmd.Flags().BoolVar(&parents, "parents", false, "Climb to the outermost owning package before scanning")
	cmd.Flags().StringVar(&path, "path", "", "Explicit file or directory to scan from (default: caller resolution)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Package names to exclude from caller resolution")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().StringVar(&match, "match", "", "Keep only packages matching name@constraint (e.g. lodash@^4.0.0)")

	return cmd
}

// applyMatch filters packages by a name@constraint expression.
func applyMatch(cmd *cobra.Command, pkgs []pkgwalk.PackageInfo, match string) ([]pkgwalk.PackageInfo, error) {
	name, constraint, ok := strings.Cut(match, "@")
	// Scoped names start with "@"; the separator is the last "@".
	if strings.HasPrefix(match, "@") {
		if idx := strings.LastIndex(match, "@"); idx > 0 {
			name, constraint, ok = match[:idx], match[idx+1:], true
		} else {
			ok = false
		}
	}
	if !ok || name == "" || constraint == "" {
		return nil, fmt.Errorf("invalid --match value %q: expected name@constraint", match)
	}

	matched, warnings, err := pkgwalk.Filter(pkgs, name, constraint)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(cmd.Context())
	for _, warning := range warnings {
		log.Warn().
			Str("component", "cli").
			Str("warning", warning).
			Msg("package skipped during match")
	}
	return matched, nil
}

func writeJSON(cmd *cobra.Command, pkgs []pkgwalk.PackageInfo) error {
	if pkgs == nil {
		pkgs = []pkgwalk.PackageInfo{}
	}
	data, err := json.MarshalIndent(pkgs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding packages: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// displayPackages writes the package list as a table to the command output.
func displayPackages(cmd *cobra.Command, pkgs []pkgwalk.PackageInfo) error {
	if len(pkgs) == 0 {
		cmd.Println("No packages found.")
		return nil
	}

	const tabPadding = 2
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "Name\tVersion\tMain\tDirectory")
	fmt.Fprintln(w, "----\t-------\t----\t---------")
	for _, p := range pkgs {
		main := p.Main
		if main == "" {
			main = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Version, main, p.Directory)
	}
	return w.Flush()
}
