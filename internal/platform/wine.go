package platform

import "strings"

// ToWinePath rewrites an absolute host path into the form a Windows program
// running under Wine sees it: the host root is mounted as drive Z:.
func ToWinePath(path string) string {
	return "z:" + strings.ReplaceAll(path, "/", `\`)
}

// PathTranslator returns the translation to apply to paths written into
// Windows installer sources generated on host. It is the identity on Windows.
func PathTranslator(host Platform) func(string) string {
	if host == Windows {
		return func(p string) string { return p }
	}
	return ToWinePath
}
