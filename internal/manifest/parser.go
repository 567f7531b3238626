package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads a descriptor file and returns only the base fields.
// Useful for quick type detection without full parsing.
func Parse(path string) (*BaseManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var base BaseManifest
	if err := yaml.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}

	return &base, nil
}

// ParseFile reads a descriptor file, detects its type, and returns the
// fully typed struct. The returned interface{} will be either a
// *PackageManifest or a *MetaPackageManifest.
func ParseFile(path string) (interface{}, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes is ParseFile for an in-memory document. path is only used in
// error messages.
func ParseBytes(data []byte, path string) (interface{}, error) {
	typeName, err := detectType(data)
	if err != nil {
		return nil, fmt.Errorf("detecting descriptor type in %s: %w", path, err)
	}

	switch typeName {
	case TypePackage:
		return parseTyped[PackageManifest](data, path)
	case TypeMetaPackage:
		return parseTyped[MetaPackageManifest](data, path)
	default:
		return nil, fmt.Errorf("unknown descriptor type %q in %s", typeName, path)
	}
}

// ParsePackage reads a descriptor file and parses it as a PackageManifest.
func ParsePackage(path string) (*PackageManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[PackageManifest](data, path)
}

// ParseMetaPackage reads a descriptor file and parses it as a MetaPackageManifest.
func ParseMetaPackage(path string) (*MetaPackageManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[MetaPackageManifest](data, path)
}

// parseTyped unmarshals YAML data into a typed descriptor struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	return &m, nil
}

// detectType unmarshals YAML data into a generic map and extracts the type field.
func detectType(data []byte) (string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("unmarshaling YAML: %w", err)
	}

	typeVal, ok := raw["type"]
	if !ok {
		return "", fmt.Errorf("descriptor missing required 'type' field")
	}

	typeName, ok := typeVal.(string)
	if !ok {
		return "", fmt.Errorf("descriptor 'type' field is not a string")
	}

	return typeName, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
