// Package scaffold generates starter files from embedded templates. It
// powers "packwix new": package and metapackage descriptors, and the
// installer.wxs and Config.wxi templates a data dir needs.
package scaffold
