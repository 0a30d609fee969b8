// Package cli implements the amber command-line interface, the host-side
// tooling around the durable store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/amber/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	storeDir  string
	jsonMode  bool
}

var flags rootFlags

// configStoreDir holds the store_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configStoreDir string

// NewRootCmd creates the top-level "amber" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "amber",
		Short:   "Amber manages interned type stores",
		Long:    "Amber initializes and inspects durable stores of interned types,\nlifetimes, goals, and substitutions.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := resolveConfigDir()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			configStoreDir = cfg.GetString(cfgKeyStoreDir)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.storeDir, "store-dir", "", "store directory (default: $(CWD)/.amber-store)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newDemoCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// resolveConfigDir follows the precedence chain flag > AMBER_CONFIG_DIR env >
// platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// resolveStoreDir follows the precedence chain flag > config.yaml store_dir >
// AMBER_STORE_DIR env > $(CWD)/.amber-store.
func resolveStoreDir() (string, error) {
	return paths.ResolveStoreDir(flags.storeDir, configStoreDir)
}

// exitError prints the error to stderr and exits with the given code.
func exitError(cmd *cobra.Command, code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
