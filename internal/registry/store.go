package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/packwix/packwix/internal/platform"
)

// Store holds every loaded package, indexed by name.
type Store struct {
	packages map[string]Package
	warnings []string
	target   platform.Platform
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTargetPlatform selects the platform whose files packages contribute.
// Defaults to the host platform.
func WithTargetPlatform(p platform.Platform) Option {
	return func(s *Store) { s.target = p }
}

// WithLogger sets the logger load warnings are written to.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		packages: make(map[string]Package),
		target:   platform.Host(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads every descriptor in dir into it.
func Open(dir string, opts ...Option) (*Store, error) {
	s := NewStore(opts...)
	if err := s.Load(dir); err != nil {
		return nil, err
	}
	return s, nil
}

// TargetPlatform returns the platform the store's packages were prepared for.
func (s *Store) TargetPlatform() platform.Platform {
	return s.target
}

// Get returns the package registered under name.
func (s *Store) Get(name string) (Package, error) {
	p, ok := s.packages[name]
	if !ok {
		return nil, &PackageNotFoundError{Name: name}
	}
	return p, nil
}

// GetMeta returns the metapackage registered under name.
func (s *Store) GetMeta(name string) (*MetaPackage, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	m, ok := p.(*MetaPackage)
	if !ok {
		return nil, fmt.Errorf("package %q is not a metapackage", name)
	}
	return m, nil
}

// Add registers p under its name. An existing package with the same name is
// replaced. p is stored as is; call Prepare first so defaults and
// per-platform files apply.
func (s *Store) Add(p Package) {
	name := p.PackageInfo().Name
	if prev, ok := s.packages[name]; ok {
		s.logger.Debug("replacing package", "name", name,
			"previous", prev.PackageInfo().Source, "source", p.PackageInfo().Source)
	}
	s.packages[name] = p
}

// List returns all packages ordered by name.
func (s *Store) List() []Package {
	result := make([]Package, 0, len(s.packages))
	for _, p := range s.packages {
		result = append(result, p)
	}
	sortByName(result)
	return result
}

// Len returns the number of registered packages.
func (s *Store) Len() int {
	return len(s.packages)
}

// Warnings returns the warnings recorded while loading, in load order.
func (s *Store) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

func (s *Store) warn(file string, err error) {
	s.logger.Warn("skipping package descriptor", "file", file, "error", err)
	s.warnings = append(s.warnings, fmt.Sprintf("%s: %v", file, err))
}

func sortByName(pkgs []Package) {
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].PackageInfo().Name < pkgs[j].PackageInfo().Name
	})
}
