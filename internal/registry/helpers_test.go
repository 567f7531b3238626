package registry

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/packwix/packwix/internal/platform"
)

func testdataDir() string {
	return "testdata"
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore builds a store from in-memory packages prepared for Windows.
func newTestStore(t *testing.T, pkgs ...Package) *Store {
	t.Helper()
	s := NewStore(WithLogger(quietLogger()), WithTargetPlatform(platform.Windows))
	for _, p := range pkgs {
		if err := p.Prepare(platform.Windows); err != nil {
			t.Fatalf("Prepare(%s): %v", p.PackageInfo().Name, err)
		}
		s.Add(p)
	}
	return s
}

func pkg(name string, deps ...string) *BasicPackage {
	return &BasicPackage{Info: Info{Name: name, Version: "1.0.0", Deps: deps}}
}

func pkgWithFiles(name string, files []string, deps ...string) *BasicPackage {
	p := pkg(name, deps...)
	p.Files = files
	return p
}

func meta(name string, refs ...PackageRef) *MetaPackage {
	return &MetaPackage{Info: Info{Name: name, Version: "1.0.0"}, Packages: refs}
}

func names(pkgs []Package) []string {
	result := make([]string, len(pkgs))
	for i, p := range pkgs {
		result[i] = p.PackageInfo().Name
	}
	return result
}

func fixturePackagesDir() string {
	return filepath.Join(testdataDir(), "packages")
}
