package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is an operating system family targeted by a build.
type Platform string

const (
	Linux   Platform = "linux"
	Windows Platform = "windows"
	Darwin  Platform = "darwin"
	Android Platform = "android"
	IOS     Platform = "ios"
)

// Platforms lists every valid Platform value.
var Platforms = []Platform{Linux, Windows, Darwin, Android, IOS}

// Architecture is a CPU architecture targeted by a build.
type Architecture string

const (
	X86       Architecture = "x86"
	X86_64    Architecture = "x86_64"
	Universal Architecture = "universal"
	Arm       Architecture = "arm"
	ArmV7     Architecture = "armv7"
	Arm64     Architecture = "arm64"
)

// Architectures lists every valid Architecture value.
var Architectures = []Architecture{X86, X86_64, Universal, Arm, ArmV7, Arm64}

// Distro is an operating system distribution.
type Distro string

const (
	DistroWindows Distro = "windows"
	DistroDebian  Distro = "debian"
	DistroRedHat  Distro = "redhat"
	DistroSuse    Distro = "suse"
	DistroArch    Distro = "arch"
	DistroOSX     Distro = "osx"
	DistroIOS     Distro = "ios"
	DistroAndroid Distro = "android"
)

// Distros lists every valid Distro value.
var Distros = []Distro{
	DistroWindows, DistroDebian, DistroRedHat, DistroSuse,
	DistroArch, DistroOSX, DistroIOS, DistroAndroid,
}

// DistroVersion is a release of a Distro, written as "<distro>_<release>".
type DistroVersion string

// Distro returns the distribution a version belongs to, or "" when the value
// carries no recognizable prefix.
func (v DistroVersion) Distro() Distro {
	prefix, _, ok := strings.Cut(string(v), "_")
	if !ok {
		return ""
	}
	for _, d := range Distros {
		if string(d) == prefix {
			return d
		}
	}
	return ""
}

// ParsePlatform converts a string into a Platform. Matching is case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q (valid: %s)", s, join(Platforms))
}

// ParseArchitecture converts a string into an Architecture. "amd64" and
// "386" are accepted as aliases so GOARCH values can be passed through.
func ParseArchitecture(s string) (Architecture, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "amd64":
		return X86_64, nil
	case "386":
		return X86, nil
	}
	for _, a := range Architectures {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown architecture %q (valid: %s)", s, join(Architectures))
}

// ParseDistro converts a string into a Distro.
func ParseDistro(s string) (Distro, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Distros {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown distro %q (valid: %s)", s, join(Distros))
}

// Host returns the platform the current process runs on.
func Host() Platform {
	p, err := ParsePlatform(runtime.GOOS)
	if err != nil {
		return Linux
	}
	return p
}

// HostArch returns the architecture of the current process.
func HostArch() Architecture {
	a, err := ParseArchitecture(runtime.GOARCH)
	if err != nil {
		return X86_64
	}
	return a
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
