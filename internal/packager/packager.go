package packager

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/packwix/packwix/internal/registry"
	"github.com/packwix/packwix/internal/wix"
)

// Module is a merge module source to generate.
type Module struct {
	Package registry.Package
	Files   []string
	Output  string // file name inside the output dir
}

// Plan lists what Pack writes for one package.
type Plan struct {
	Package registry.Package
	Root    *registry.DependencyNode
	Modules []Module
	// Skipped names packages that ship no files for the target platform.
	// They get neither a merge module nor a feature.
	Skipped []string
	// Installer is the product source file name; empty for basic packages.
	Installer string
}

// Meta returns the planned metapackage, or nil for a basic package.
func (p *Plan) Meta() *registry.MetaPackage {
	m, _ := p.Package.(*registry.MetaPackage)
	return m
}

// Active returns the packages that get a merge module.
func (p *Plan) Active() []registry.Package {
	result := make([]registry.Package, len(p.Modules))
	for i, m := range p.Modules {
		result[i] = m.Package
	}
	return result
}

// Packager generates WiX sources for packages in a store.
type Packager struct {
	store  *registry.Store
	opts   wix.Options
	logger *slog.Logger
}

// New returns a Packager resolving packages in store.
func New(store *registry.Store, opts wix.Options) *Packager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Packager{store: store, opts: opts, logger: logger}
}

// Plan resolves name without writing anything.
func (p *Packager) Plan(name string) (*Plan, error) {
	pkg, err := p.store.Get(name)
	if err != nil {
		return nil, err
	}
	root, err := p.store.BuildDependencyTree(name)
	if err != nil {
		return nil, err
	}
	plan := &Plan{Package: pkg, Root: root}

	meta, ok := pkg.(*registry.MetaPackage)
	if !ok {
		files, err := p.store.PackageFilesList(pkg)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("package %s has no files for %s", name, p.store.TargetPlatform())
		}
		plan.Modules = []Module{{Package: pkg, Files: files, Output: name + ".wxs"}}
		return plan, nil
	}

	deps, err := p.store.PackageDeps(meta, false)
	if err != nil {
		return nil, err
	}
	for _, dep := range deps {
		depName := dep.PackageInfo().Name
		files, err := p.store.PackageFilesList(dep)
		if err != nil {
			return nil, err
		}
		if _, nested := dep.(*registry.MetaPackage); nested || len(files) == 0 {
			p.logger.Warn("package has no files, skipping", "package", depName, "platform", p.store.TargetPlatform())
			plan.Skipped = append(plan.Skipped, depName)
			continue
		}
		plan.Modules = append(plan.Modules, Module{Package: dep, Files: files, Output: depName + ".wxs"})
	}
	if len(plan.Modules) == 0 {
		return nil, fmt.Errorf("metapackage %s has no packages with files for %s", name, p.store.TargetPlatform())
	}
	plan.Installer = name + ".wxs"
	return plan, nil
}

// Pack writes the WiX sources for name into outputDir and returns the
// written paths in write order.
func (p *Packager) Pack(name, outputDir string) ([]string, error) {
	plan, err := p.Plan(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	var written []string
	for _, m := range plan.Modules {
		path := filepath.Join(outputDir, m.Output)
		if err := wix.NewMergeModule(p.opts, m.Package, m.Files).Write(path); err != nil {
			return written, fmt.Errorf("merge module for %s: %w", m.Package.PackageInfo().Name, err)
		}
		p.logger.Info("wrote merge module", "package", m.Package.PackageInfo().Name, "path", path)
		written = append(written, path)
	}

	meta := plan.Meta()
	if meta == nil {
		return written, nil
	}

	configPath, err := wix.NewConfig(p.opts, meta).Write(outputDir)
	if err != nil {
		return written, fmt.Errorf("config for %s: %w", name, err)
	}
	written = append(written, configPath)

	msi, err := wix.NewMSI(p.opts, meta, plan.Active(), configPath, p.store)
	if err != nil {
		return written, err
	}
	path := filepath.Join(outputDir, plan.Installer)
	if err := msi.Write(path); err != nil {
		return written, fmt.Errorf("installer for %s: %w", name, err)
	}
	p.logger.Info("wrote installer", "package", name, "path", path)
	return append(written, path), nil
}
