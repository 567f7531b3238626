// Package registry loads package descriptors into an in-memory store and
// answers dependency queries over them. The store is populated from a
// directory of .package files; descriptors that fail to validate or prepare
// are skipped with a warning. Dependency resolution only reads the store and
// reports unknown package names as errors.
package registry
