package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/registry"
)

var (
	depsRecursive bool
	depsTree      bool
	depsOrder     bool
	depsJSON      bool
)

var depsCmd = &cobra.Command{
	Use:   "deps <name>",
	Short: "Show the dependencies of a package",
	Long: `Show the dependencies of a package, sorted by name.

For a metapackage the result is every package it composes plus everything
those packages depend on. For a package it is the declared dependencies, or
their transitive closure with --recursive.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().BoolVarP(&depsRecursive, "recursive", "r", false, "Include transitive dependencies")
	depsCmd.Flags().BoolVar(&depsTree, "tree", false, "Print the dependency tree")
	depsCmd.Flags().BoolVar(&depsOrder, "order", false, "Print dependencies before the packages that need them")
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "Output in JSON format")
	depsCmd.MarkFlagsMutuallyExclusive("tree", "order")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	name := args[0]

	if depsTree || depsOrder {
		root, err := store.BuildDependencyTree(name)
		if err != nil {
			return err
		}
		if depsTree {
			registry.PrintTree(cmd.OutOrStdout(), root, "", true)
			return nil
		}
		return printNames(cmd, packageNames(registry.FlattenTree(root)))
	}

	deps, err := store.Deps(name, depsRecursive)
	if err != nil {
		return err
	}
	if len(deps) == 0 && !depsJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no dependencies\n", name)
		return nil
	}
	return printNames(cmd, packageNames(deps))
}

func printNames(cmd *cobra.Command, names []string) error {
	if depsJSON {
		return printJSON(cmd, names)
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
