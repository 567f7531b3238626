package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/packager"
)

var packageDryRun bool

var packageCmd = &cobra.Command{
	Use:   "package <name>",
	Short: "Generate all WiX sources for a package",
	Long: `Generate the merge module source of every package that ships files and,
for a metapackage, Config.wxi and the installer source that composes them.`,
	Args: cobra.ExactArgs(1),
	RunE: runPackage,
}

func init() {
	packageCmd.Flags().BoolVar(&packageDryRun, "dry-run", false, "Print the plan without writing files")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	opts, err := wixOptions()
	if err != nil {
		return err
	}
	p := packager.New(store, opts)

	if packageDryRun {
		plan, err := p.Plan(args[0])
		if err != nil {
			return err
		}
		packager.PrintPlan(cmd.OutOrStdout(), plan)
		return nil
	}

	written, err := p.Pack(args[0], cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
