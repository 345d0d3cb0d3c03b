// Root command for the otkeep CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// Config values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configDataDir        string
	configOverwriteOnAdd = true
	configCloneConflict  string
)

var rootCmd = &cobra.Command{
	Use:   "otkeep",
	Short: "Otkeep is an out-of-tree keeper for per-tree scripts and files",
	Long: `Otkeep associates personal, uncommitted scripts and files with a
working tree and runs or restores them from any subdirectory of that tree.

Invoked without a subcommand, otkeep lists the scripts and files kept for
the tree governing the current directory, or the established trees when no
tree governs it.`,
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configOverwriteOnAdd = cfg.GetBool(cfgKeyOverwriteOnAdd)
		configCloneConflict = cfg.GetString(cfgKeyCloneConflict)
		return nil
	},
	RunE: runStatus,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding otkeep.db (default: platform data dir)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(establishCmd)
	rootCmd.AddCommand(unestablishCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(modCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(listTreesCmd)
	rootCmd.AddCommand(cloneCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > OTKEEP_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > OTKEEP_DATA_DIR env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
