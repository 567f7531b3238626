//go:build integration

package integration_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	PackagesDir string // *.package descriptors
	DataDir     string // wix/installer.wxs and wix/Config.wxi
	PrefixDir   string // installed files the merge modules point at
	OutputDir   string // generated sources
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		PackagesDir: filepath.Join(root, "packages"),
		DataDir:     filepath.Join(root, "data"),
		PrefixDir:   filepath.Join(root, "dist"),
		OutputDir:   filepath.Join(root, "out"),
	}
	for _, dir := range []string{env.PackagesDir, env.PrefixDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return env
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDescriptor(t *testing.T, env *testEnv, name, content string) {
	t.Helper()
	path := filepath.Join(env.PackagesDir, name+".package")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing descriptor %s: %v", name, err)
	}
}

// installFiles creates empty files under the prefix.
func installFiles(t *testing.T, env *testEnv, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(env.PrefixDir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readXML(t *testing.T, path string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return doc
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file not to exist: %s", path)
	}
}
