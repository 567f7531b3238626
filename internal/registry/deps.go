package registry

// Deps returns the dependencies of the named package; see PackageDeps.
func (s *Store) Deps(name string, recursive bool) ([]Package, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return s.PackageDeps(p, recursive)
}

// PackageDeps returns the dependencies of p, deduplicated and sorted by name.
//
// For a metapackage the direct set is already its dependency closure: every
// constituent package plus everything reachable from it through declared
// deps. For a basic package the direct set is its declared deps; with
// recursive set they are expanded breadth-first to the transitive closure.
// Cycles terminate. Unknown names fail with a *PackageNotFoundError.
func (s *Store) PackageDeps(p Package, recursive bool) ([]Package, error) {
	names, err := s.directDeps(p)
	if err != nil {
		return nil, err
	}
	if recursive {
		if names, err = s.expand(names); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(names))
	result := make([]Package, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		dep, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		result = append(result, dep)
	}
	sortByName(result)
	return result, nil
}

// FilesList returns the files of the named package; see PackageFilesList.
func (s *Store) FilesList(name string) ([]string, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return s.PackageFilesList(p)
}

// PackageFilesList returns the sorted, duplicate-free files provided by p.
// A metapackage provides the files of every package in its dependency
// closure.
func (s *Store) PackageFilesList(p Package) ([]string, error) {
	m, ok := p.(*MetaPackage)
	if !ok {
		return sortedUnique(p.FilesList()), nil
	}

	deps, err := s.metaPackageDeps(m)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, dep := range deps {
		files = append(files, dep.FilesList()...)
	}
	return sortedUnique(files), nil
}

// directDeps returns the names PackageDeps starts from.
func (s *Store) directDeps(p Package) ([]string, error) {
	m, ok := p.(*MetaPackage)
	if !ok {
		return p.PackageInfo().Deps, nil
	}
	deps, err := s.metaPackageDeps(m)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(deps))
	for i, dep := range deps {
		names[i] = dep.PackageInfo().Name
	}
	return names, nil
}

// expand walks breadth-first from start and returns every reachable name,
// start included, in visit order.
func (s *Store) expand(start []string) ([]string, error) {
	visited := make(map[string]bool)
	queue := append([]string(nil), start...)
	var order []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true
		order = append(order, name)

		p, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		next, err := s.directDeps(p)
		if err != nil {
			return nil, err
		}
		queue = append(queue, next...)
	}
	return order, nil
}

// metaPackageDeps returns the metapackage closure of m: for each constituent
// a depth-first walk over declared deps, each walk with its own visited set.
// A nested metapackage is walked through its constituents too. The union is
// sorted by name.
func (s *Store) metaPackageDeps(m *MetaPackage) ([]Package, error) {
	closure := make(map[string]Package)
	for _, ref := range m.Packages {
		visited := make(map[string]bool)
		if err := s.walk(ref.Name, visited, closure); err != nil {
			return nil, err
		}
	}

	result := make([]Package, 0, len(closure))
	for _, p := range closure {
		result = append(result, p)
	}
	sortByName(result)
	return result, nil
}

func (s *Store) walk(name string, visited map[string]bool, into map[string]Package) error {
	if visited[name] {
		return nil
	}
	visited[name] = true

	p, err := s.Get(name)
	if err != nil {
		return err
	}
	into[name] = p
	next := p.PackageInfo().Deps
	if m, ok := p.(*MetaPackage); ok {
		next = append(m.PackageNames(), next...)
	}
	for _, dep := range next {
		if err := s.walk(dep, visited, into); err != nil {
			return err
		}
	}
	return nil
}
