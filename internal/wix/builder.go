package wix

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/packwix/packwix/internal/branding"
	"github.com/packwix/packwix/internal/platform"
	"github.com/packwix/packwix/internal/registry"
)

// Schema is the WiX 3 namespace every generated document declares.
const Schema = "http://schemas.microsoft.com/wix/2006/wi"

// language is the LCID written into modules and merges (en-US).
const language = "1033"

// Options carries the build settings shared by every builder.
type Options struct {
	// Platform is the platform the build runs on. Anything but Windows means
	// paths in the output are rewritten for wine.
	Platform platform.Platform
	// TargetPlatform selects per-platform install dirs and files.
	TargetPlatform platform.Platform
	// TargetArch selects the Program Files folder and installer platform.
	TargetArch platform.Architecture
	// Prefix is the directory package files are installed under.
	Prefix string
	// DataDir holds wix/installer.wxs and wix/Config.wxi.
	DataDir string
	// NewGUID generates component and package GUIDs. Defaults to
	// time-based (version 1) UUIDs.
	NewGUID func() (string, error)
	Logger  *slog.Logger
}

func (o Options) translate(path string) string {
	return platform.PathTranslator(o.Platform)(path)
}

func (o Options) guid() (string, error) {
	if o.NewGUID != nil {
		return o.NewGUID()
	}
	u, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generating GUID: %w", err)
	}
	return u.String(), nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) templatePath(name string) string {
	return filepath.Join(o.DataDir, "wix", name)
}

type buildState int

const (
	notBuilt buildState = iota
	built
)

// builder holds what merge modules and installers share: the document, the
// path id counters and the one-shot guard around build.
type builder struct {
	opts  Options
	doc   *etree.Document
	ids   *idFormatter
	state buildState
	build func() error
}

func newBuilder(opts Options, build func() error) builder {
	return builder{
		opts:  opts,
		doc:   etree.NewDocument(),
		ids:   newIDFormatter(),
		state: notBuilt,
		build: build,
	}
}

// Fill builds the document tree. Only the first successful call does any
// work. After an error the builder must be discarded.
func (b *builder) Fill() error {
	if b.state == built {
		return nil
	}
	if err := b.build(); err != nil {
		return err
	}
	b.state = built
	return nil
}

// Document returns the filled document.
func (b *builder) Document() (*etree.Document, error) {
	if err := b.Fill(); err != nil {
		return nil, err
	}
	return b.doc, nil
}

// WriteTo fills the document and writes it to w.
func (b *builder) WriteTo(w io.Writer) (int64, error) {
	if err := b.Fill(); err != nil {
		return 0, err
	}
	b.prepareOutput()
	return b.doc.WriteTo(w)
}

// Write fills the document and writes it to path.
func (b *builder) Write(path string) error {
	if err := b.Fill(); err != nil {
		return err
	}
	b.prepareOutput()
	if err := b.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (b *builder) prepareOutput() {
	if !hasDeclaration(b.doc) {
		b.doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="utf-8"`))
	}
	b.doc.Indent(2)
}

func hasDeclaration(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.ProcInst:
			return t.Target == "xml"
		case *etree.CharData:
			continue
		default:
			return false
		}
	}
	return false
}

func formatLevel(selected bool) string {
	if selected {
		return "1"
	}
	return "2"
}

func formatAbsent(required bool) string {
	if required {
		return "disallow"
	}
	return "allow"
}

func manufacturer(info *registry.Info) string {
	if info.Vendor != "" {
		return info.Vendor
	}
	return branding.Manufacturer()
}

func addDirectory(parent *etree.Element, id, name string) *etree.Element {
	dir := parent.CreateElement("Directory")
	dir.CreateAttr("Id", id)
	dir.CreateAttr("Name", name)
	return dir
}
