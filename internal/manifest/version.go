package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	bv, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}

// ParseVersion strips a leading "v" and parses the version string. Short
// forms such as "1" or "1.2" are accepted and padded with zeros.
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

// InstallerVersion converts a descriptor version into the dotted numeric
// form Windows Installer accepts (major.minor.build). Pre-release and build
// metadata are dropped. Windows Installer caps major and minor at 255 and
// build at 65535.
func InstallerVersion(version string) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	if v.Major() > 255 || v.Minor() > 255 || v.Patch() > 65535 {
		return "", fmt.Errorf("version %q exceeds installer limits (255.255.65535)", version)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()), nil
}
