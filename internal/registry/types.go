package registry

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/platform"
)

// Package is an entry in the store: a *BasicPackage or a *MetaPackage.
type Package interface {
	// PackageInfo returns the descriptive fields shared by every kind.
	PackageInfo() *Info
	// FilesList returns the files the package contributes, sorted.
	FilesList() []string
	// Prepare applies defaults and computes derived fields for the target
	// platform. The loader calls it once before registering the package.
	Prepare(target platform.Platform) error
}

// Info holds descriptive metadata shared by all package kinds.
type Info struct {
	Name      string
	Version   string
	Title     string
	ShortDesc string
	LongDesc  string
	Vendor    string
	URL       string
	UUID      string   // stable installer identity; empty means "generate one"
	Deps      []string // direct dependency names, in declaration order
	Source    string   // descriptor path; empty for packages added in code
}

// PackageInfo implements Package.
func (i *Info) PackageInfo() *Info { return i }

func (i *Info) prepare() error {
	if i.Name == "" {
		return fmt.Errorf("package has no name")
	}
	if _, err := manifest.ParseVersion(i.Version); err != nil {
		return err
	}
	if i.Title == "" {
		i.Title = cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(i.Name))
	}
	if i.ShortDesc == "" {
		i.ShortDesc = i.Title
	}
	if i.LongDesc == "" {
		i.LongDesc = i.ShortDesc
	}
	return nil
}

// BasicPackage is a package that contributes files.
type BasicPackage struct {
	Info
	Files         []string
	PlatformFiles map[platform.Platform][]string

	files    []string
	prepared bool
}

// Prepare implements Package. The file list becomes the common files plus
// the files declared for target.
func (p *BasicPackage) Prepare(target platform.Platform) error {
	if err := p.Info.prepare(); err != nil {
		return err
	}
	all := append([]string(nil), p.Files...)
	all = append(all, p.PlatformFiles[target]...)
	p.files = sortedUnique(all)
	p.prepared = true
	return nil
}

// FilesList implements Package. PlatformFiles only count once Prepare has
// picked the target; before that the list is the common Files alone.
func (p *BasicPackage) FilesList() []string {
	if !p.prepared {
		return sortedUnique(p.Files)
	}
	return append([]string(nil), p.files...)
}

// PackageRef names a constituent of a metapackage.
type PackageRef struct {
	Name     string `json:"name"`
	Required bool   `json:"required"` // the user cannot deselect it
	Selected bool   `json:"selected"` // installed by default
}

// MetaPackage composes other packages into an installable product. It has
// no files of its own.
type MetaPackage struct {
	Info
	Packages   []PackageRef
	InstallDir map[platform.Platform]string
}

// Prepare implements Package.
func (m *MetaPackage) Prepare(target platform.Platform) error {
	if err := m.Info.prepare(); err != nil {
		return err
	}
	if len(m.Packages) == 0 {
		return fmt.Errorf("metapackage %s lists no packages", m.Name)
	}
	for i, ref := range m.Packages {
		if ref.Name == "" {
			return fmt.Errorf("metapackage %s: package #%d has no name", m.Name, i+1)
		}
		if ref.Name == m.Name {
			return fmt.Errorf("metapackage %s lists itself", m.Name)
		}
	}
	return nil
}

// FilesList implements Package. A metapackage's files are those of its
// dependency closure; see Store.PackageFilesList.
func (m *MetaPackage) FilesList() []string { return nil }

// PackageNames returns the names of the constituent packages in order.
func (m *MetaPackage) PackageNames() []string {
	names := make([]string, len(m.Packages))
	for i, ref := range m.Packages {
		names[i] = ref.Name
	}
	return names
}

// Kind returns the descriptor type of p.
func Kind(p Package) string {
	if _, ok := p.(*MetaPackage); ok {
		return manifest.TypeMetaPackage
	}
	return manifest.TypePackage
}

// FromManifest converts a parsed descriptor (as returned by
// manifest.ParseFile) into a Package. The result is not prepared.
func FromManifest(parsed interface{}, source string) (Package, error) {
	switch m := parsed.(type) {
	case *manifest.PackageManifest:
		p := &BasicPackage{
			Info:  infoFromManifest(m.BaseManifest, source),
			Files: m.Files,
		}
		if len(m.PlatformFiles) > 0 {
			p.PlatformFiles = make(map[platform.Platform][]string, len(m.PlatformFiles))
			for key, files := range m.PlatformFiles {
				plat, err := platform.ParsePlatform(key)
				if err != nil {
					return nil, fmt.Errorf("platform_files: %w", err)
				}
				p.PlatformFiles[plat] = append(p.PlatformFiles[plat], files...)
			}
		}
		return p, nil

	case *manifest.MetaPackageManifest:
		mp := &MetaPackage{Info: infoFromManifest(m.BaseManifest, source)}
		for _, ref := range m.Packages {
			mp.Packages = append(mp.Packages, PackageRef{
				Name:     ref.Name,
				Required: ref.Required,
				Selected: ref.Selected,
			})
		}
		if len(m.InstallDir) > 0 {
			mp.InstallDir = make(map[platform.Platform]string, len(m.InstallDir))
			for key, dir := range m.InstallDir {
				plat, err := platform.ParsePlatform(key)
				if err != nil {
					return nil, fmt.Errorf("install_dir: %w", err)
				}
				mp.InstallDir[plat] = dir
			}
		}
		return mp, nil

	default:
		return nil, fmt.Errorf("no package or metapackage found (got %T)", parsed)
	}
}

func infoFromManifest(b manifest.BaseManifest, source string) Info {
	return Info{
		Name:      b.Name,
		Version:   b.Version,
		Title:     b.Title,
		ShortDesc: b.ShortDesc,
		LongDesc:  b.LongDesc,
		Vendor:    b.Vendor,
		URL:       b.URL,
		UUID:      b.UUID,
		Deps:      append([]string(nil), b.Deps...),
		Source:    source,
	}
}

// sortedUnique returns a sorted copy of values with duplicates removed.
func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	sort.Strings(result)
	return result
}
