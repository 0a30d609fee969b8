// Config loading for the amber CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyStoreDir = "store_dir"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config directory or config.yaml is not an error; init
// creates both.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// configPath returns the location of config.yaml inside configDir.
func configPath(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}
