// Package packager turns a package from the registry into WiX sources: a
// merge module per package that ships files and, for metapackages, the
// Config.wxi include and the installer product.
package packager
