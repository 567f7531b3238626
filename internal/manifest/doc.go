// Package manifest handles parsing and validation of package descriptors.
// A descriptor is a YAML document whose "type" field selects one of two
// shapes: a package, which contributes files, or a metapackage, which composes
// other packages into an installable product. Descriptors are validated
// against the JSON Schema embedded from schema/descriptor.schema.json.
package manifest
