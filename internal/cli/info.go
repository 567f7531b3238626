package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/platform"
	"github.com/packwix/packwix/internal/registry"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show package details",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

type infoView struct {
	Name       string                       `json:"name"`
	Type       string                       `json:"type"`
	Version    string                       `json:"version"`
	Title      string                       `json:"title"`
	ShortDesc  string                       `json:"shortdesc"`
	LongDesc   string                       `json:"longdesc"`
	Vendor     string                       `json:"vendor,omitempty"`
	URL        string                       `json:"url,omitempty"`
	UUID       string                       `json:"uuid,omitempty"`
	Deps       []string                     `json:"deps"`
	Packages   []registry.PackageRef        `json:"packages,omitempty"`
	InstallDir map[platform.Platform]string `json:"install_dir,omitempty"`
	Files      int                          `json:"files"`
	Source     string                       `json:"source,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	p, err := store.Get(args[0])
	if err != nil {
		return err
	}
	files, err := store.PackageFilesList(p)
	if err != nil {
		return err
	}

	info := p.PackageInfo()
	view := infoView{
		Name:      info.Name,
		Type:      registry.Kind(p),
		Version:   info.Version,
		Title:     info.Title,
		ShortDesc: info.ShortDesc,
		LongDesc:  info.LongDesc,
		Vendor:    info.Vendor,
		URL:       info.URL,
		UUID:      info.UUID,
		Deps:      append([]string{}, info.Deps...),
		Files:     len(files),
		Source:    info.Source,
	}
	if m, ok := p.(*registry.MetaPackage); ok {
		view.Packages = m.Packages
		view.InstallDir = m.InstallDir
	}

	if infoJSON {
		return printJSON(cmd, view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s)\n", view.Name, view.Version, view.Type)
	fmt.Fprintf(out, "  Title:       %s\n", view.Title)
	fmt.Fprintf(out, "  Description: %s\n", view.ShortDesc)
	if view.LongDesc != view.ShortDesc {
		fmt.Fprintf(out, "  Details:     %s\n", view.LongDesc)
	}
	if view.Vendor != "" {
		fmt.Fprintf(out, "  Vendor:      %s\n", view.Vendor)
	}
	if view.URL != "" {
		fmt.Fprintf(out, "  URL:         %s\n", view.URL)
	}
	if view.UUID != "" {
		fmt.Fprintf(out, "  UUID:        %s\n", view.UUID)
	}
	if len(view.Deps) > 0 {
		fmt.Fprintf(out, "  Deps:        %s\n", strings.Join(view.Deps, ", "))
	}
	for _, ref := range view.Packages {
		fmt.Fprintf(out, "  Package:     %s (required=%t, selected=%t)\n", ref.Name, ref.Required, ref.Selected)
	}
	if len(view.InstallDir) > 0 {
		plats := make([]string, 0, len(view.InstallDir))
		for plat := range view.InstallDir {
			plats = append(plats, string(plat))
		}
		sort.Strings(plats)
		for _, plat := range plats {
			fmt.Fprintf(out, "  Install dir: %s (%s)\n", view.InstallDir[platform.Platform(plat)], plat)
		}
	}
	fmt.Fprintf(out, "  Files:       %d\n", view.Files)
	if view.Source != "" {
		fmt.Fprintf(out, "  Source:      %s\n", view.Source)
	}
	return nil
}
