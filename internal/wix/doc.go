// Package wix builds WiX source documents from registry packages: one merge
// module (.wxs compiled to .msm) per package, an installer product that
// composes those merge modules into features, and the Config.wxi include
// the product reads its identity from.
//
// Builders are single use. Fill builds the document tree once; later calls
// are no-ops. Write fills and serializes the tree as indented UTF-8 XML.
package wix
