package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PackagesDir != "packages" || cfg.TargetPlatform != "windows" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if _, _, err := cfg.Target(); err != nil {
		t.Errorf("default target should parse: %v", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "packwix.yaml")
	content := "packages_dir: /srv/packages\noutput_dir: /srv/out\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PACKWIX_OUTPUT_DIR", "/env/out")

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PackagesDir != "/srv/packages" {
		t.Errorf("PackagesDir = %q, want value from file", cfg.PackagesDir)
	}
	if cfg.OutputDir != "/env/out" {
		t.Errorf("OutputDir = %q, want environment to override file", cfg.OutputDir)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want default", cfg.DataDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestTargetRejectsUnknownValues(t *testing.T) {
	cfg := &Config{TargetPlatform: "beos", TargetArch: "x86"}
	if _, _, err := cfg.Target(); err == nil || !strings.Contains(err.Error(), KeyTargetPlatform) {
		t.Errorf("Target() error = %v", err)
	}
	cfg = &Config{TargetPlatform: "windows", TargetArch: "sparc"}
	if _, _, err := cfg.Target(); err == nil || !strings.Contains(err.Error(), KeyTargetArch) {
		t.Errorf("Target() error = %v", err)
	}
}

func TestSetPersistsOnlyExplicitKeys(t *testing.T) {
	home := isolate(t)
	if _, err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := Set(KeyDataDir, "/opt/data"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if Get(KeyDataDir) != "/opt/data" {
		t.Errorf("Get after Set = %q", Get(KeyDataDir))
	}

	data, err := os.ReadFile(filepath.Join(home, ".packwix", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "/opt/data") {
		t.Errorf("config file missing value: %q", data)
	}
	if strings.Contains(string(data), KeyPackagesDir) {
		t.Errorf("defaults should not be persisted: %q", data)
	}
}

func TestSetUnknownKey(t *testing.T) {
	isolate(t)
	if err := Set("colour", "blue"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != 9 || keys[0] != KeyDataDir {
		t.Errorf("Keys() = %v", keys)
	}
}
