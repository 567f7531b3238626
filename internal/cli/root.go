package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/packwix/packwix/internal/branding"
	"github.com/packwix/packwix/internal/config"
	"github.com/packwix/packwix/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile string
	cfg     *config.Config
)

// persistentFlags maps root flags to the config keys they override.
var persistentFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"packages-dir", config.KeyPackagesDir, "directory holding *.package descriptors"},
	{"data-dir", config.KeyDataDir, "directory holding wix/installer.wxs and wix/Config.wxi"},
	{"output-dir", config.KeyOutputDir, "directory generated sources are written to"},
	{"prefix", config.KeyPrefix, "install prefix package files are read from"},
	{"target-platform", config.KeyTargetPlatform, "platform installers are built for"},
	{"target-arch", config.KeyTargetArch, "architecture installers are built for (x86, x86_64)"},
	{"log-level", config.KeyLogLevel, "log level (debug, info, warn, error)"},
	{"log-format", config.KeyLogFormat, "log format (text, json)"},
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads package descriptors and generates WiX sources: a merge module
for every package and an installer product for every metapackage.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	for _, pf := range persistentFlags {
		f.String(pf.name, "", pf.usage)
	}
}

// setup resolves the configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	for _, pf := range persistentFlags {
		if err := viper.BindPFlag(pf.key, cmd.Flags().Lookup(pf.name)); err != nil {
			return fmt.Errorf("binding --%s: %w", pf.name, err)
		}
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	slog.SetDefault(logging.New(c.LogLevel, c.LogFormat, cmd.ErrOrStderr()))
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
