package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/packwix/packwix/internal/branding"
	"github.com/packwix/packwix/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const descriptorTemplate = "descriptor.package.tmpl"

// ErrExists reports that a scaffold target is already present.
var ErrExists = errors.New("already exists")

// Data holds all template variables available to descriptor templates.
type Data struct {
	Name       string   // e.g., "gstreamer-core"
	Version    string   // e.g., "1.0.0"
	Title      string   // Derived from Name
	ShortDesc  string   // Human-readable description
	Vendor     string   // Defaults to the branding manufacturer
	UUID       string   // Fresh random UUID
	Deps       []string // packages only
	Packages   []string // metapackages only; the first is required
	InstallDir string   // metapackages only; defaults to Name
	Year       int      // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates a Data with derived fields populated.
func NewData(name string) *Data {
	title := cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	return &Data{
		Name:       name,
		Version:    "1.0.0",
		Title:      title,
		ShortDesc:  title,
		Vendor:     branding.Manufacturer(),
		UUID:       uuid.NewString(),
		InstallDir: name,
		Year:       time.Now().Year(),
	}
}

// DescriptorPath returns where a descriptor for name is written.
func DescriptorPath(packagesDir, name string) string {
	return filepath.Join(packagesDir, name+manifest.Extension)
}

// GenerateDescriptor renders a package or metapackage descriptor into
// packagesDir. An existing descriptor is never overwritten. Schema
// violations in the result are reported as warnings.
func GenerateDescriptor(typeName string, data *Data, packagesDir string) (*Result, error) {
	if !manifest.IsValidType(typeName) {
		return nil, fmt.Errorf("unknown descriptor type %q (want one of %s)", typeName, strings.Join(manifest.ValidTypes, ", "))
	}

	tmplPath := path.Join("scaffolds", typeName, descriptorTemplate)
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", typeName, err)
	}

	outPath := DescriptorPath(packagesDir, data.Name)
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s %w; remove it first", outPath, ErrExists)
	}

	tmpl, err := template.New(descriptorTemplate).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	if err := os.MkdirAll(packagesDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{
		OutputDir: packagesDir,
		Files:     []string{filepath.Base(outPath)},
	}

	valResult, err := manifest.Validate(buf.Bytes())
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate descriptor: %v", err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
	return result, nil
}

// GenerateData writes the WiX templates a data dir needs into dataDir.
// Nothing is written when any of the files already exists.
func GenerateData(dataDir string) (*Result, error) {
	const root = "scaffolds/data"

	var files []string
	err := fs.WalkDir(scaffoldFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, strings.TrimPrefix(p, root+"/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading data templates: %w", err)
	}

	var existing []string
	for _, rel := range files {
		if _, err := os.Stat(filepath.Join(dataDir, filepath.FromSlash(rel))); err == nil {
			existing = append(existing, rel)
		}
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%s in %s %w; remove existing files first", strings.Join(existing, ", "), dataDir, ErrExists)
	}

	result := &Result{OutputDir: dataDir}
	for _, rel := range files {
		content, err := fs.ReadFile(scaffoldFS, path.Join(root, rel))
		if err != nil {
			return nil, err
		}
		outPath := filepath.Join(dataDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, rel)
	}
	return result, nil
}
