package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/amber/pkg/durable"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	StoreDir string `yaml:"store_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize an amber store",
		Long:  "Create the configuration directory, write config.yaml, and initialize\nthe durable store so later commands can open it.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("resolve config directory: %s", err))
	}
	storeDir, err := resolveStoreDir()
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("resolve store directory: %s", err))
	}

	if err := ensureConfigDir(configDir); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("create config directory: %s", err))
	}
	if err := writeConfigIfMissing(configPath(configDir), storeDir); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("write config: %s", err))
	}

	// Opening the store creates the directory, the database, and the store
	// identity; closing it immediately leaves an empty initialized store.
	s, err := durable.Open(storeDir)
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("initialize store: %s", err))
	}
	if err := s.Close(); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("finalize store: %s", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized amber store in %s\n", storeDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, storeDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{StoreDir: storeDir}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
