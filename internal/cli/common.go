package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packwix/packwix/internal/registry"
	"github.com/packwix/packwix/internal/wix"
)

// openStore loads the configured packages dir for the configured target.
func openStore() (*registry.Store, error) {
	target, _, err := cfg.Target()
	if err != nil {
		return nil, err
	}
	return registry.Open(cfg.PackagesDir,
		registry.WithTargetPlatform(target),
		registry.WithLogger(slog.Default()),
	)
}

// wixOptions builds the generator options from the configuration.
func wixOptions() (wix.Options, error) {
	host, err := cfg.HostPlatform()
	if err != nil {
		return wix.Options{}, err
	}
	target, arch, err := cfg.Target()
	if err != nil {
		return wix.Options{}, err
	}
	prefix, err := filepath.Abs(cfg.Prefix)
	if err != nil {
		return wix.Options{}, fmt.Errorf("resolving prefix: %w", err)
	}
	return wix.Options{
		Platform:       host,
		TargetPlatform: target,
		TargetArch:     arch,
		Prefix:         prefix,
		DataDir:        cfg.DataDir,
		Logger:         slog.Default(),
	}, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func packageNames(pkgs []registry.Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.PackageInfo().Name
	}
	return names
}
