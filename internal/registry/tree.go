package registry

import (
	"fmt"
	"io"

	"github.com/packwix/packwix/internal/manifest"
)

// DependencyNode is a node in a printable dependency tree.
type DependencyNode struct {
	Name     string
	Kind     string // "package" or "metapackage"
	Package  Package
	Ref      *PackageRef // set for constituents of a metapackage
	Children []*DependencyNode
	Deduped  bool // true if this package was already expanded earlier in the tree
}

// BuildDependencyTree resolves name and recursively builds its dependency
// tree. A metapackage's children are its constituents; a basic package's
// children are its declared deps. Every package is expanded once; later
// occurrences, cycles included, are marked Deduped.
func (s *Store) BuildDependencyTree(name string) (*DependencyNode, error) {
	seen := make(map[string]bool)
	return s.buildNode(name, nil, seen)
}

func (s *Store) buildNode(name string, ref *PackageRef, seen map[string]bool) (*DependencyNode, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	node := &DependencyNode{
		Name:    name,
		Kind:    Kind(p),
		Package: p,
		Ref:     ref,
	}
	if seen[name] {
		node.Deduped = true
		return node, nil
	}
	seen[name] = true

	if m, ok := p.(*MetaPackage); ok {
		for i := range m.Packages {
			child, err := s.buildNode(m.Packages[i].Name, &m.Packages[i], seen)
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", name, err)
			}
			node.Children = append(node.Children, child)
		}
	}
	for _, dep := range p.PackageInfo().Deps {
		child, err := s.buildNode(dep, nil, seen)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *DependencyNode, prefix string, isLast bool) {
	printNode(w, node, prefix, isLast, true)
}

func printNode(w io.Writer, node *DependencyNode, prefix string, isLast, root bool) {
	if node == nil {
		return
	}

	label := fmt.Sprintf("%s %s", node.Name, node.Package.PackageInfo().Version)
	if node.Kind == manifest.TypeMetaPackage {
		label += " (metapackage)"
	}
	if node.Ref != nil {
		switch {
		case node.Ref.Required:
			label += " [required]"
		case node.Ref.Selected:
			label += " [selected]"
		default:
			label += " [optional]"
		}
	}
	if node.Deduped {
		label += " (deduped)"
	}

	childPrefix := prefix
	if root {
		fmt.Fprintf(w, "%s%s\n", prefix, label)
	} else {
		connector := "├── "
		if isLast {
			connector = "└── "
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, label)
	}

	for i, child := range node.Children {
		printNode(w, child, childPrefix, i == len(node.Children)-1, false)
	}
}

// FlattenTree returns every package in the tree once, dependencies before
// dependents.
func FlattenTree(root *DependencyNode) []Package {
	seen := make(map[string]bool)
	var result []Package
	flattenRecursive(root, seen, &result)
	return result
}

func flattenRecursive(node *DependencyNode, seen map[string]bool, result *[]Package) {
	if node == nil || node.Deduped || seen[node.Name] {
		return
	}
	for _, child := range node.Children {
		flattenRecursive(child, seen, result)
	}
	seen[node.Name] = true
	*result = append(*result, node.Package)
}
