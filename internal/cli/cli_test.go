package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/amber/internal/durable"
)

// run executes the root command with args, capturing stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestInitCreatesConfigAndStore(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	storeDir := filepath.Join(t.TempDir(), "store")

	out := run(t, "init", "--config-dir", configDir, "--store-dir", storeDir)
	assert.Contains(t, out, "Initialized amber store")

	_, err := os.Stat(filepath.Join(configDir, "config.yaml"))
	assert.NoError(t, err, "init must write config.yaml")
	_, err = os.Stat(filepath.Join(storeDir, durable.DBName))
	assert.NoError(t, err, "init must create the store database")

	// Second init is idempotent.
	out = run(t, "init", "--config-dir", configDir, "--store-dir", storeDir)
	assert.Contains(t, out, "Initialized amber store")
}

func TestStatsOnFreshStore(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	storeDir := filepath.Join(t.TempDir(), "store")

	run(t, "init", "--config-dir", configDir, "--store-dir", storeDir)

	out := run(t, "stats", "--config-dir", configDir, "--store-dir", storeDir)
	assert.Contains(t, out, "total:      0")

	out = run(t, "stats", "--config-dir", configDir, "--store-dir", storeDir, "--json")
	assert.Contains(t, out, `"total": 0`)
}

func TestDemoReportsSharing(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	t.Run("arena dedups", func(t *testing.T) {
		out := run(t, "demo", "arena", "--config-dir", configDir)
		assert.Contains(t, out, "structurally equal:   true")
		assert.Contains(t, out, "same handle:          true")
	})

	t.Run("boxed does not", func(t *testing.T) {
		out := run(t, "demo", "boxed", "--config-dir", configDir)
		assert.Contains(t, out, "structurally equal:   true")
		assert.Contains(t, out, "same handle:          false")
	})
}

func TestVersionOutput(t *testing.T) {
	out := run(t, "version", "--config-dir", t.TempDir())
	assert.Contains(t, out, "amber v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestWriteConfigIfMissingIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, writeConfigIfMissing(path, "/some/store"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "store_dir: /some/store")

	// Existing file is left untouched.
	require.NoError(t, writeConfigIfMissing(path, "/other/store"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
