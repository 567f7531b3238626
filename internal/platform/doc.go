// Package platform defines the fixed set of enumerations a package descriptor
// may reference (platform, architecture, distro, distro version) and the path
// translation used when Windows sources are produced on a non-Windows host.
package platform
