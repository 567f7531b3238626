package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/packager"
	"github.com/packwix/packwix/internal/registry"
	"github.com/packwix/packwix/internal/wix"
)

var wixCmd = &cobra.Command{
	Use:   "wix",
	Short: "Generate individual WiX sources",
	Long: `Generate a single WiX source. Use "package" to generate everything an
installer needs in one go.`,
}

var wixMergeModuleCmd = &cobra.Command{
	Use:   "merge-module <name>",
	Short: "Generate the merge module source for a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runWixMergeModule,
}

var wixMSICmd = &cobra.Command{
	Use:   "msi <name>",
	Short: "Generate the installer source and Config.wxi for a metapackage",
	Args:  cobra.ExactArgs(1),
	RunE:  runWixMSI,
}

func init() {
	wixCmd.AddCommand(wixMergeModuleCmd)
	wixCmd.AddCommand(wixMSICmd)
	rootCmd.AddCommand(wixCmd)
}

func runWixMergeModule(cmd *cobra.Command, args []string) error {
	store, opts, err := wixSetup()
	if err != nil {
		return err
	}
	p, err := store.Get(args[0])
	if err != nil {
		return err
	}
	if _, ok := p.(*registry.MetaPackage); ok {
		return fmt.Errorf("%s is a metapackage; merge modules are built from packages", args[0])
	}
	files, err := store.PackageFilesList(p)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, args[0]+".wxs")
	if err := wix.NewMergeModule(opts, p, files).Write(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d files)\n", path, len(files))
	return nil
}

func runWixMSI(cmd *cobra.Command, args []string) error {
	store, opts, err := wixSetup()
	if err != nil {
		return err
	}
	plan, err := packager.New(store, opts).Plan(args[0])
	if err != nil {
		return err
	}
	meta := plan.Meta()
	if meta == nil {
		return fmt.Errorf("%s: %w", args[0], wix.ErrNotMetaPackage)
	}

	configPath, err := wix.NewConfig(opts, meta).Write(cfg.OutputDir)
	if err != nil {
		return err
	}
	msi, err := wix.NewMSI(opts, meta, plan.Active(), configPath, store)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, plan.Installer)
	if err := msi.Write(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", configPath)
	fmt.Fprintf(out, "Wrote %s (%d merge modules)\n", path, len(plan.Modules))
	return nil
}

func wixSetup() (*registry.Store, wix.Options, error) {
	store, err := openStore()
	if err != nil {
		return nil, wix.Options{}, err
	}
	opts, err := wixOptions()
	if err != nil {
		return nil, wix.Options{}, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, wix.Options{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}
	return store, opts, nil
}
