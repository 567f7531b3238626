package packager

import (
	"fmt"
	"io"
	"strings"

	"github.com/packwix/packwix/internal/registry"
	"github.com/packwix/packwix/internal/wix"
)

// PrintPlan prints the dependency tree and the files Pack would write.
func PrintPlan(w io.Writer, plan *Plan) {
	fmt.Fprintf(w, "Resolving %s...\n", plan.Package.PackageInfo().Name)
	fmt.Fprintln(w)

	registry.PrintTree(w, plan.Root, "  ", true)
	fmt.Fprintln(w)

	names := make([]string, len(plan.Modules))
	files := 0
	for i, m := range plan.Modules {
		names[i] = m.Package.PackageInfo().Name
		files += len(m.Files)
	}
	noun := "merge modules"
	if len(names) == 1 {
		noun = "merge module"
	}
	fmt.Fprintf(w, "  Write: %d %s (%s), %d files\n", len(names), noun, strings.Join(names, ", "), files)
	if plan.Installer != "" {
		fmt.Fprintf(w, "  Installer: %s + %s\n", plan.Installer, wix.ConfigTemplate)
	}
	for _, name := range plan.Skipped {
		fmt.Fprintf(w, "\n  Warning: %s has no files, skipped\n", name)
	}

	fmt.Fprintln(w)
}
