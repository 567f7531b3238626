package wix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/platform"
	"github.com/packwix/packwix/internal/registry"
)

// ConfigTemplate is the include file the installer product reads its
// identity from.
const ConfigTemplate = "Config.wxi"

// Config writes the Config.wxi include for a metapackage.
type Config struct {
	opts Options
	meta *registry.MetaPackage
}

// NewConfig returns a Config.wxi writer for meta.
func NewConfig(opts Options, meta *registry.MetaPackage) *Config {
	return &Config{opts: opts, meta: meta}
}

// Write copies the Config.wxi template from the data dir into outputDir,
// substituting the @Token@ placeholders, and returns the written path.
func (c *Config) Write(outputDir string) (string, error) {
	src := c.opts.templatePath(ConfigTemplate)
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading config template: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("reading config template: %w", err)
	}

	replacer, err := c.replacer()
	if err != nil {
		return "", err
	}

	dst := filepath.Join(outputDir, ConfigTemplate)
	if err := os.WriteFile(dst, []byte(replacer.Replace(string(data))), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	return dst, nil
}

func (c *Config) replacer() (*strings.Replacer, error) {
	version, err := manifest.InstallerVersion(c.meta.Version)
	if err != nil {
		return nil, err
	}

	id := c.meta.UUID
	if id == "" {
		if id, err = c.opts.guid(); err != nil {
			return nil, err
		}
		c.opts.logger().Warn("metapackage has no uuid, generated a new upgrade code",
			"package", c.meta.Name, "uuid", id)
	}

	return strings.NewReplacer(
		"@ProductID@", id,
		"@UpgradeCode@", id,
		"@Language@", language,
		"@Manufacturer@", manufacturer(&c.meta.Info),
		"@Version@", version,
		"@PackageComments@", c.meta.LongDesc,
		"@Description@", c.meta.ShortDesc,
		"@ProjectURL@", c.meta.URL,
		"@ProductName@", c.meta.Title,
		"@ProgramFilesFolder@", programFilesFolder(c.opts.TargetArch),
		"@Platform@", installerPlatform(c.opts.TargetArch),
	), nil
}

func programFilesFolder(arch platform.Architecture) string {
	if arch == platform.X86 {
		return "ProgramFilesFolder"
	}
	return "ProgramFiles64Folder"
}

func installerPlatform(arch platform.Architecture) string {
	if arch == platform.X86_64 {
		return "x64"
	}
	return "x86"
}
