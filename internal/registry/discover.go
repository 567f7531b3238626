package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/platform"
)

// Load registers every descriptor file (*.package) found directly in dir.
// Descriptors that fail to validate, parse or prepare are skipped and
// recorded as warnings. Load only fails, with a *FatalError, when dir does
// not exist or cannot be read.
func (s *Store) Load(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &FatalError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return &FatalError{Dir: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &FatalError{Dir: dir, Err: err}
	}

	loaded, skipped := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !isDescriptorFile(entry.Name()) {
			continue
		}

		p, err := LoadDescriptor(filepath.Join(dir, entry.Name()), s.target)
		if err != nil {
			s.warn(entry.Name(), err)
			skipped++
			continue
		}
		s.Add(p)
		loaded++
	}

	s.logger.Debug("loaded package descriptors", "dir", dir, "count", loaded, "skipped", skipped)
	return nil
}

// LoadDescriptor validates, parses and prepares a single descriptor file.
func LoadDescriptor(path string, target platform.Platform) (Package, error) {
	result, err := manifest.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid descriptor: %s", result.Summary())
	}

	parsed, err := manifest.ParseFile(path)
	if err != nil {
		return nil, err
	}

	p, err := FromManifest(parsed, path)
	if err != nil {
		return nil, err
	}
	if err := p.Prepare(target); err != nil {
		return nil, fmt.Errorf("preparing %s: %w", p.PackageInfo().Name, err)
	}
	return p, nil
}

// isDescriptorFile returns true if the filename carries the descriptor
// extension. Hidden files (editor backups, dotfiles) are ignored.
func isDescriptorFile(name string) bool {
	return strings.HasSuffix(name, manifest.Extension) && !strings.HasPrefix(name, ".")
}
