package wix

import (
	"path"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/registry"
)

// MergeModule builds the merge module source for one package.
type MergeModule struct {
	builder

	pkg   registry.Package
	files []string

	module   *etree.Element
	dirNodes map[string]*etree.Element
}

// NewMergeModule returns a builder for pkg shipping files, which are paths
// relative to opts.Prefix.
func NewMergeModule(opts Options, pkg registry.Package, files []string) *MergeModule {
	m := &MergeModule{
		pkg:      pkg,
		files:    files,
		dirNodes: make(map[string]*etree.Element),
	}
	m.builder = newBuilder(opts, m.fill)
	return m
}

func (m *MergeModule) fill() error {
	info := m.pkg.PackageInfo()

	version, err := manifest.InstallerVersion(info.Version)
	if err != nil {
		return err
	}
	id := info.UUID
	if id == "" {
		if id, err = m.opts.guid(); err != nil {
			return err
		}
	}

	root := m.doc.CreateElement("Wix")
	root.CreateAttr("xmlns", Schema)

	m.module = root.CreateElement("Module")
	m.module.CreateAttr("Id", FormatID(info.Name, false))
	m.module.CreateAttr("Version", version)
	m.module.CreateAttr("Language", language)

	pkg := m.module.CreateElement("Package")
	pkg.CreateAttr("Id", id)
	pkg.CreateAttr("Description", info.ShortDesc)
	pkg.CreateAttr("Comments", info.LongDesc)
	pkg.CreateAttr("Manufacturer", manufacturer(info))

	m.dirNodes[""] = addDirectory(m.module, "TARGETDIR", "SourceDir")

	for _, f := range m.files {
		if err := m.addFile(f); err != nil {
			return err
		}
	}
	m.opts.logger().Debug("filled merge module", "package", info.Name, "files", len(m.files))
	return nil
}

// directory returns the Directory node for dir, creating it and any missing
// ancestors first.
func (m *MergeModule) directory(dir string) *etree.Element {
	if node, ok := m.dirNodes[dir]; ok {
		return node
	}
	parent := path.Dir(dir)
	if parent == "." || parent == "/" {
		parent = ""
	}
	parentNode := m.directory(parent)

	node := addDirectory(parentNode, m.ids.pathID(dir, false), path.Base(dir))
	m.dirNodes[dir] = node
	return node
}

func (m *MergeModule) addFile(file string) error {
	file = filepath.ToSlash(file)
	dir, name := path.Split(path.Clean(file))
	dir = path.Clean(dir)
	if dir == "." || dir == "/" {
		dir = ""
	}

	guid, err := m.opts.guid()
	if err != nil {
		return err
	}
	component := m.directory(dir).CreateElement("Component")
	component.CreateAttr("Id", m.ids.pathID(file, false))
	component.CreateAttr("Guid", guid)

	source := filepath.Join(m.opts.Prefix, filepath.FromSlash(file))
	f := component.CreateElement("File")
	f.CreateAttr("Id", m.ids.pathID(source, true))
	f.CreateAttr("Name", name)
	f.CreateAttr("Source", m.opts.translate(source))
	return nil
}
