package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/packwix/packwix/internal/registry"
)

type env struct {
	home   string
	output string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return &env{home: home, output: filepath.Join(t.TempDir(), "out")}
}

// run executes the root command with the fixture directories and args.
func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{
		"--packages-dir", "testdata/packages",
		"--data-dir", "testdata/data",
		"--output-dir", e.output,
		"--prefix", "/opt/sdk",
		"--target-platform", "windows",
		"--target-arch", "x86_64",
		"--log-level", "error",
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so commands do not leak
// state between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, content)
	}
}

func TestList(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertContains(t, out, "NAME")
	assertContains(t, out, "gstreamer-sdk")
	assertContains(t, out, "metapackage")
}

func TestListJSONFilter(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "list", "--json", "--type", "metapackage")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Name != "gstreamer-sdk" {
		t.Errorf("entries = %+v", entries)
	}
	if entries[0].Files != 6 {
		t.Errorf("Files = %d, want 6", entries[0].Files)
	}
}

func TestInfo(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "info", "gstreamer-sdk")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	assertContains(t, out, "gstreamer-sdk 1.0.0 (metapackage)")
	assertContains(t, out, "Package:     gstreamer-core (required=true, selected=true)")
	assertContains(t, out, "Install dir: gstreamer-sdk (windows)")
}

func TestInfoUnknownPackage(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "info", "nope")
	if !errors.Is(err, registry.ErrPackageNotFound) {
		t.Errorf("error = %v, want ErrPackageNotFound", err)
	}
}

func TestMissingPackagesDir(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "list", "--packages-dir", filepath.Join(e.home, "missing"))
	var fatal *registry.FatalError
	if !errors.As(err, &fatal) {
		t.Errorf("error = %v, want *registry.FatalError", err)
	}
}

func TestDeps(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "deps", "gstreamer-python")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	if out != "gstreamer-core\n" {
		t.Errorf("direct deps = %q", out)
	}

	out, err = e.run(t, "deps", "gstreamer-python", "--recursive")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	if out != "base-system\ngstreamer-core\n" {
		t.Errorf("recursive deps = %q", out)
	}

	out, err = e.run(t, "deps", "base-system")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	assertContains(t, out, "has no dependencies")
}

func TestDepsTreeAndOrder(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "deps", "gstreamer-sdk", "--tree")
	if err != nil {
		t.Fatalf("deps --tree: %v", err)
	}
	assertContains(t, out, "gstreamer-sdk 1.0.0 (metapackage)")
	assertContains(t, out, "└── gstreamer-python 0.10.22 [optional]")
	assertContains(t, out, "gstreamer-core 0.10.36 (deduped)")

	out, err = e.run(t, "deps", "gstreamer-sdk", "--order")
	if err != nil {
		t.Fatalf("deps --order: %v", err)
	}
	want := "base-system\ngstreamer-core\ngstreamer-python\ngstreamer-sdk\n"
	if out != want {
		t.Errorf("order = %q, want %q", out, want)
	}
}

func TestFiles(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "files", "base-system", "--json")
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	var files []string
	if err := json.Unmarshal([]byte(out), &files); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []string{"bin/libglib-2.0-0.dll", "bin/libintl-8.dll", "share/licenses/glib.txt"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestValidate(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	assertContains(t, out, "✓ testdata/packages/gstreamer-sdk.package")

	bad := filepath.Join(t.TempDir(), "bad.package")
	if err := os.WriteFile(bad, []byte("name: bad\ntype: recipe\nversion: \"1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = e.run(t, "validate", bad)
	if err == nil {
		t.Fatal("expected validate to fail")
	}
	assertContains(t, out, "✗ "+bad)
}

func TestPackage(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "package", "gstreamer-sdk")
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	for _, name := range []string{"base-system.wxs", "gstreamer-core.wxs", "gstreamer-python.wxs", "Config.wxi", "gstreamer-sdk.wxs"} {
		if _, err := os.Stat(filepath.Join(e.output, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
		assertContains(t, out, name)
	}
}

func TestPackageDryRun(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "package", "gstreamer-sdk", "--dry-run")
	if err != nil {
		t.Fatalf("package --dry-run: %v", err)
	}
	assertContains(t, out, "Resolving gstreamer-sdk...")
	assertContains(t, out, "Write: 3 merge modules")
	if _, err := os.Stat(e.output); !os.IsNotExist(err) {
		t.Error("dry run should not create the output dir")
	}
}

func TestWixCommands(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "wix", "merge-module", "gstreamer-core")
	if err != nil {
		t.Fatalf("wix merge-module: %v", err)
	}
	assertContains(t, out, "gstreamer-core.wxs (3 files)")

	if _, err := e.run(t, "wix", "merge-module", "gstreamer-sdk"); err == nil {
		t.Error("merge-module for a metapackage should fail")
	}

	out, err = e.run(t, "wix", "msi", "gstreamer-sdk")
	if err != nil {
		t.Fatalf("wix msi: %v", err)
	}
	assertContains(t, out, "Config.wxi")
	data, err := os.ReadFile(filepath.Join(e.output, "gstreamer-sdk.wxs"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(data), `SourceFile="gstreamer-core.msm"`)

	if _, err := e.run(t, "wix", "msi", "gstreamer-core"); err == nil {
		t.Error("msi for a package should fail")
	}
}

func TestNew(t *testing.T) {
	e := newEnv(t)
	dir := t.TempDir()

	out, err := e.run(t, "--packages-dir", dir, "new", "package", "gst-libav", "--dep", "gstreamer-core", "--description", "libav plugins")
	if err != nil {
		t.Fatalf("new package: %v", err)
	}
	assertContains(t, out, "gst-libav.package")
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected warnings:\n%s", out)
	}
	content, err := os.ReadFile(filepath.Join(dir, "gst-libav.package"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(content), "  - gstreamer-core")
	assertContains(t, string(content), `shortdesc: "libav plugins"`)

	if _, err := e.run(t, "--packages-dir", dir, "new", "package", "gst-libav"); err == nil {
		t.Error("new package should not overwrite")
	}

	dataDir := filepath.Join(t.TempDir(), "data")
	out, err = e.run(t, "--data-dir", dataDir, "new", "data")
	if err != nil {
		t.Fatalf("new data: %v", err)
	}
	assertContains(t, out, "wix/installer.wxs")
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)

	if _, err := e.run(t, "config", "set", "data_dir", "/srv/data"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.home, ".packwix", "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	viper.Reset()
	out, err := e.run(t, "config", "get", "prefix")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if out != "/opt/sdk\n" {
		t.Errorf("flag should win over defaults, got %q", out)
	}

	if _, err := e.run(t, "config", "get", "colour"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	buildVersion = "1.2.3"
	out, err := e.run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "1.2.3\n" {
		t.Errorf("version --short = %q", out)
	}
}
