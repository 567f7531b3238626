package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/registry"
)

var (
	listTypeFilter string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages",
	Long:  `List every package and metapackage found in the packages dir.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listTypeFilter, "type", "", "Filter by type (package, metapackage)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a package for display.
type listEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
	Title   string `json:"title"`
	Files   int    `json:"files"`
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, p := range store.List() {
		kind := registry.Kind(p)
		if listTypeFilter != "" && kind != listTypeFilter {
			continue
		}
		files, err := store.PackageFilesList(p)
		if err != nil {
			return err
		}
		info := p.PackageInfo()
		entries = append(entries, listEntry{
			Name:    info.Name,
			Type:    kind,
			Version: info.Version,
			Title:   info.Title,
			Files:   len(files),
		})
	}

	if listJSON {
		if entries == nil {
			entries = []listEntry{}
		}
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		if listTypeFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No packages matching --type=%s\n", listTypeFilter)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "No packages found in %s\n", cfg.PackagesDir)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tVERSION\tFILES\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Name, e.Type, e.Version, e.Files, e.Title)
	}
	return w.Flush()
}
