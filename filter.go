package pkgwalk

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Satisfies reports whether p's version satisfies the given semver
// constraint (e.g. ">=2.0.0 <3.0.0", "^1.4"). An unparseable constraint or
// package version is an error.
func Satisfies(p PackageInfo, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(p.Version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q of %s: %w", p.Version, p.Name, err)
	}

	return c.Check(v), nil
}

// Filter returns the packages named name whose versions satisfy constraint,
// preserving input order. Packages with invalid semver versions are skipped
// and reported as warnings rather than failing the whole filter.
func Filter(pkgs []PackageInfo, name, constraint string) ([]PackageInfo, []string, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}

	var matched []PackageInfo
	var warnings []string
	for _, p := range pkgs {
		if p.Name != name {
			continue
		}
		v, verErr := semver.NewVersion(p.Version)
		if verErr != nil {
			warnings = append(warnings,
				fmt.Sprintf("package %s version %s has invalid semver format: %v",
					p.Name, p.Version, verErr))
			continue
		}
		if c.Check(v) {
			matched = append(matched, p)
		}
	}

	return matched, warnings, nil
}
