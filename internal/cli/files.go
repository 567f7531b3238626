package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filesJSON bool

var filesCmd = &cobra.Command{
	Use:   "files <name>",
	Short: "List the files a package ships",
	Long: `List the files a package ships on the target platform, relative to the
install prefix. A metapackage ships the files of all its dependencies.`,
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	files, err := store.FilesList(args[0])
	if err != nil {
		return err
	}

	if filesJSON {
		if files == nil {
			files = []string{}
		}
		return printJSON(cmd, files)
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
