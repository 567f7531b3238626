package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/manifest"
	"github.com/packwix/packwix/internal/scaffold"
)

var (
	newVersion  string
	newDesc     string
	newDeps     []string
	newPackages []string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create descriptors and data templates",
}

var newPackageCmd = &cobra.Command{
	Use:   "package <name>",
	Short: "Create a package descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNewDescriptor(cmd, manifest.TypePackage, args[0])
	},
}

var newMetaPackageCmd = &cobra.Command{
	Use:   "metapackage <name>",
	Short: "Create a metapackage descriptor",
	Long: `Create a metapackage descriptor. The first --package is marked required,
the others optional.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNewDescriptor(cmd, manifest.TypeMetaPackage, args[0])
	},
}

var newDataCmd = &cobra.Command{
	Use:   "data",
	Short: "Create the WiX templates in the data dir",
	Args:  cobra.NoArgs,
	RunE:  runNewData,
}

func init() {
	for _, c := range []*cobra.Command{newPackageCmd, newMetaPackageCmd} {
		c.Flags().StringVar(&newVersion, "version", "1.0.0", "Package version")
		c.Flags().StringVar(&newDesc, "description", "", "Short description")
	}
	newPackageCmd.Flags().StringSliceVar(&newDeps, "dep", nil, "Dependency name (repeatable)")
	newMetaPackageCmd.Flags().StringSliceVar(&newPackages, "package", nil, "Constituent package name (repeatable)")

	newCmd.AddCommand(newPackageCmd)
	newCmd.AddCommand(newMetaPackageCmd)
	newCmd.AddCommand(newDataCmd)
	rootCmd.AddCommand(newCmd)
}

func runNewDescriptor(cmd *cobra.Command, typeName, name string) error {
	data := scaffold.NewData(name)
	data.Version = newVersion
	if newDesc != "" {
		data.ShortDesc = newDesc
	}
	if typeName == manifest.TypePackage {
		data.Deps = newDeps
	} else {
		data.Packages = newPackages
	}

	result, err := scaffold.GenerateDescriptor(typeName, data, cfg.PackagesDir)
	if err != nil {
		return err
	}
	printScaffoldResult(cmd, result)
	return nil
}

func runNewData(cmd *cobra.Command, args []string) error {
	result, err := scaffold.GenerateData(cfg.DataDir)
	if err != nil {
		return err
	}
	printScaffoldResult(cmd, result)
	return nil
}

func printScaffoldResult(cmd *cobra.Command, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created in %s:\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  Warning: %s\n", w)
	}
}
