package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate package descriptors",
	Long: `Validate descriptors against the descriptor schema and check that they load.
Without arguments every descriptor in the packages dir is validated.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(cfg.PackagesDir, "*"+manifest.Extension))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			if _, err := os.Stat(cfg.PackagesDir); err != nil {
				return &registry.FatalError{Dir: cfg.PackagesDir, Err: err}
			}
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !strings.HasPrefix(filepath.Base(m), ".") {
				files = append(files, m)
			}
		}
	}

	target, _, err := cfg.Target()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, file := range files {
		result, err := manifest.ValidateFile(file)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", file, err)
			invalid++
			continue
		}
		if !result.Valid {
			fmt.Fprintf(out, "✗ %s\n", file)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "    %s\n", issue)
			}
			invalid++
			continue
		}
		if _, err := registry.LoadDescriptor(file, target); err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", file, err)
			invalid++
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", file)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d descriptors invalid", invalid, len(files))
	}
	return nil
}
