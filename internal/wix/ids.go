package wix

import (
	"fmt"
	"path"
	"strings"
)

var (
	idEscaper = strings.NewReplacer(
		"_", "__",
		"/", "_",
		"-", "_",
		" ", "_",
		"@", "_",
		"+", "_",
	)
	dotStripper = strings.NewReplacer(".", "")
)

// FormatID turns s into a WiX identifier. Underscores are doubled, the
// characters "/-@+" and space become underscores, dots are removed when
// stripDots is set, and the result is prefixed with an underscore so it
// never starts with a digit.
func FormatID(s string, stripDots bool) string {
	id := idEscaper.Replace(s)
	if stripDots {
		id = dotStripper.Replace(id)
	}
	return "_" + id
}

// idFormatter hands out identifiers derived from file system paths. Only the
// last path element is used, so distinct paths can map to the same token;
// repeats get a numeric suffix.
type idFormatter struct {
	counts map[string]int
	used   map[string]bool
}

func newIDFormatter() *idFormatter {
	return &idFormatter{counts: make(map[string]int), used: make(map[string]bool)}
}

func (f *idFormatter) pathID(p string, stripDots bool) string {
	token := FormatID(path.Base(strings.ReplaceAll(p, "\\", "/")), stripDots)

	n := f.counts[token]
	id := token
	if n > 0 {
		id = fmt.Sprintf("%s_%d", token, n)
	}
	// A suffixed id can equal another path's natural token.
	for f.used[id] {
		n++
		id = fmt.Sprintf("%s_%d", token, n)
	}
	f.counts[token] = n + 1
	f.used[id] = true
	return id
}
