package wix

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/beevik/etree"

	"github.com/packwix/packwix/internal/platform"
	"github.com/packwix/packwix/internal/registry"
)

// sequentialGUIDs returns a generator yielding predictable GUIDs.
func sequentialGUIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("00000000-0000-1000-8000-%012d", n), nil
	}
}

func testOptions(host platform.Platform) Options {
	return Options{
		Platform:       host,
		TargetPlatform: platform.Windows,
		TargetArch:     platform.X86_64,
		Prefix:         "/opt/gst",
		DataDir:        "testdata/data",
		NewGUID:        sequentialGUIDs(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func basic(name, version string, deps ...string) *registry.BasicPackage {
	return &registry.BasicPackage{Info: registry.Info{Name: name, Version: version, Deps: deps}}
}

func newStore(t *testing.T, pkgs ...registry.Package) *registry.Store {
	t.Helper()
	s := registry.NewStore(
		registry.WithTargetPlatform(platform.Windows),
		registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	for _, p := range pkgs {
		if err := p.Prepare(platform.Windows); err != nil {
			t.Fatalf("Prepare(%s): %v", p.PackageInfo().Name, err)
		}
		s.Add(p)
	}
	return s
}

func attr(el *etree.Element, key string) string {
	return el.SelectAttrValue(key, "")
}

func ids(elements []*etree.Element) []string {
	result := make([]string, len(elements))
	for i, el := range elements {
		result[i] = attr(el, "Id")
	}
	return result
}

// findAll returns the elements named tag under el in document order.
func findAll(el *etree.Element, tag string) []*etree.Element {
	var result []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			result = append(result, child)
		}
		result = append(result, findAll(child, tag)...)
	}
	return result
}
