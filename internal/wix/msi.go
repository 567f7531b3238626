package wix

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/packwix/packwix/internal/registry"
)

// InstallerTemplate is the product skeleton read from the data dir.
const InstallerTemplate = "installer.wxs"

// ErrNotMetaPackage is returned when an installer is requested for a basic
// package.
var ErrNotMetaPackage = errors.New("installers can only be built from metapackages")

// Resolver looks up packages and their dependencies. *registry.Store
// implements it.
type Resolver interface {
	Get(name string) (registry.Package, error)
	PackageDeps(p registry.Package, recursive bool) ([]registry.Package, error)
}

// MSI builds the installer product source for a metapackage. Every active
// package becomes a merge module under INSTALLDIR; each constituent of the
// metapackage becomes a feature referencing the merge modules it needs.
type MSI struct {
	builder

	meta     *registry.MetaPackage
	active   []registry.Package
	isActive map[string]bool
	resolver Resolver

	product    *etree.Element
	installDir *etree.Element
}

// NewMSI parses the installer template from opts.DataDir and returns a
// builder for meta. active is the set of packages that get a merge module,
// usually the metapackage dependencies that ship files. configPath is the
// Config.wxi the product includes.
func NewMSI(opts Options, meta *registry.MetaPackage, active []registry.Package, configPath string, resolver Resolver) (*MSI, error) {
	m := &MSI{
		meta:     meta,
		active:   active,
		isActive: make(map[string]bool, len(active)),
		resolver: resolver,
	}
	for _, p := range active {
		m.isActive[p.PackageInfo().Name] = true
	}
	m.builder = newBuilder(opts, m.fill)

	templatePath := opts.templatePath(InstallerTemplate)
	if err := m.doc.ReadFromFile(templatePath); err != nil {
		return nil, fmt.Errorf("reading installer template %s: %w", templatePath, err)
	}
	root := m.doc.Root()
	if root == nil {
		return nil, fmt.Errorf("installer template %s has no root element", templatePath)
	}
	stripNamespaces(root)
	root.CreateAttr("xmlns", Schema)
	root.InsertChildAt(0, etree.NewProcInst("include", opts.translate(configPath)))

	m.product = root.FindElement(".//Product")
	if m.product == nil {
		return nil, fmt.Errorf("installer template %s has no Product element", templatePath)
	}
	return m, nil
}

// stripNamespaces drops the prefixes bound to the WiX schema from el and its
// descendants, along with their declarations, so WiX elements are addressed
// by local name. Extension namespaces such as util: keep their prefix and
// declaration.
func stripNamespaces(el *etree.Element) {
	stripWixPrefixes(el, nil)
}

func stripWixPrefixes(el *etree.Element, wixPrefixes map[string]bool) {
	attrs := el.Attr[:0]
	for _, a := range el.Attr {
		if a.Space != "xmlns" {
			attrs = append(attrs, a)
			continue
		}
		// Bindings are scoped to el and its descendants.
		scoped := make(map[string]bool, len(wixPrefixes)+1)
		for k, v := range wixPrefixes {
			scoped[k] = v
		}
		scoped[a.Key] = a.Value == Schema
		wixPrefixes = scoped
		if a.Value != Schema {
			attrs = append(attrs, a)
		}
	}
	el.Attr = attrs
	if wixPrefixes[el.Space] {
		el.Space = ""
	}
	for _, child := range el.ChildElements() {
		stripWixPrefixes(child, wixPrefixes)
	}
}

func (m *MSI) fill() error {
	if err := m.addInstallDir(); err != nil {
		return err
	}
	return m.addMergeModules()
}

func (m *MSI) addInstallDir() error {
	dir, ok := m.meta.InstallDir[m.opts.TargetPlatform]
	if !ok || dir == "" {
		return fmt.Errorf("metapackage %s has no install_dir for %s", m.meta.Name, m.opts.TargetPlatform)
	}
	target := addDirectory(m.product, "TARGETDIR", "SourceDir")
	programFiles := addDirectory(target, "ProgramFilesFolder", "PFiles")
	product := addDirectory(programFiles, FormatID(dir, false), dir)
	m.installDir = addDirectory(product, "INSTALLDIR", ".")
	return nil
}

type constituent struct {
	pkg      registry.Package
	required bool
	selected bool
}

func (m *MSI) addMergeModules() error {
	main := m.product.CreateElement("Feature")
	main.CreateAttr("Id", FormatID(m.meta.Name, false))
	main.CreateAttr("Title", m.meta.Title)
	main.CreateAttr("Level", "1")
	main.CreateAttr("Display", "expand")
	main.CreateAttr("AllowAdvertise", "no")
	main.CreateAttr("ConfigurableDirectory", "INSTALLDIR")

	var members []constituent
	for _, ref := range m.meta.Packages {
		p, err := m.resolver.Get(ref.Name)
		if err != nil {
			return err
		}
		// Packages without files have no merge module.
		if !m.isActive[ref.Name] {
			m.opts.logger().Debug("skipping feature without merge module", "package", ref.Name)
			continue
		}
		members = append(members, constituent{pkg: p, required: ref.Required, selected: ref.Selected})
	}

	required, err := m.requiredSet(members)
	if err != nil {
		return err
	}
	for _, c := range members {
		if err := m.addFeature(main, c, required); err != nil {
			return err
		}
	}

	for _, p := range m.active {
		name := p.PackageInfo().Name
		merge := m.installDir.CreateElement("Merge")
		merge.CreateAttr("Id", FormatID(name, false))
		merge.CreateAttr("Language", language)
		merge.CreateAttr("SourceFile", name+".msm")
		merge.CreateAttr("DiskId", "1")
	}
	return nil
}

// requiredSet returns the required constituents and everything they depend
// on.
func (m *MSI) requiredSet(members []constituent) (map[string]bool, error) {
	required := make(map[string]bool)
	for _, c := range members {
		if !c.required {
			continue
		}
		required[c.pkg.PackageInfo().Name] = true
		deps, err := m.resolver.PackageDeps(c.pkg, true)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			required[d.PackageInfo().Name] = true
		}
	}
	return required, nil
}

// addFeature adds the feature for c. A required feature references its
// dependencies that are installed unconditionally; an optional feature
// references only the dependencies nothing forces. Dependencies without a
// merge module are not referenced.
func (m *MSI) addFeature(parent *etree.Element, c constituent, required map[string]bool) error {
	info := c.pkg.PackageInfo()
	feature := parent.CreateElement("Feature")
	feature.CreateAttr("Id", FormatID(info.Name, false))
	feature.CreateAttr("Title", info.ShortDesc)
	feature.CreateAttr("Level", formatLevel(c.selected))
	feature.CreateAttr("Display", "expand")
	feature.CreateAttr("Absent", formatAbsent(c.required))

	deps, err := m.resolver.PackageDeps(c.pkg, true)
	if err != nil {
		return err
	}
	for _, d := range deps {
		name := d.PackageInfo().Name
		// Skipping inactive deps departs from referencing every retained
		// dependency: a MergeRef without its Merge would not link.
		if name == info.Name || !m.isActive[name] || required[name] != c.required {
			continue
		}
		ref := feature.CreateElement("MergeRef")
		ref.CreateAttr("Id", FormatID(name, false))
	}
	ref := feature.CreateElement("MergeRef")
	ref.CreateAttr("Id", FormatID(info.Name, false))
	return nil
}
