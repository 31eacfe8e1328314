package e2e

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/shell/store"
	"github.com/odooforge/odooforge/internal/shell/writer"
)

// =============================================================================
// Configuration Helpers
// =============================================================================

// FullStack returns a configuration with every optional service enabled and
// fixed credentials, so repeated runs produce identical bundles.
func FullStack(name string) domain.StackConfig {
	cfg := domain.NewStackConfig()
	cfg.ProjectName = name
	cfg.Domain = name + ".example.com"
	cfg.DBPassword = "pg-e2e-secret-value"
	cfg.AdminPassword = "admin-e2e-secret-value"
	cfg.Workers = 4
	cfg.MemoryLimitGB = 4
	cfg.EnableRedis = true
	cfg.EnableNginx = true
	cfg.EnablePostgresPort = true
	return cfg
}

// MinimalStack returns a development-mode configuration: zero workers and no
// optional services.
func MinimalStack(name string) domain.StackConfig {
	cfg := domain.NewStackConfig()
	cfg.ProjectName = name
	cfg.DBPassword = "pg-e2e-secret-value"
	cfg.AdminPassword = "admin-e2e-secret-value"
	cfg.Workers = 0
	cfg.CronThreads = 0
	return cfg
}

// =============================================================================
// Pipeline Helpers
// =============================================================================

// GenerateBundle runs the synthesis pipeline and fails the test on any error.
func GenerateBundle(t *testing.T, cfg domain.StackConfig) synth.Result {
	t.Helper()
	result, err := synth.Run(cfg, synth.Options{})
	require.NoError(t, err)
	return result
}

// WriteBundle materializes a synthesis result under a fresh temp directory
// and returns the bundle root.
func WriteBundle(t *testing.T, result synth.Result) string {
	t.Helper()
	manifest, entries, err := archive.Plan(result.Artifacts, result.Config)
	require.NoError(t, err)

	root, err := writer.WriteTree(t.TempDir(), manifest, entries)
	require.NoError(t, err)
	return root
}

// ReadBundleFile reads one file from a written bundle.
func ReadBundleFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

// UnzipArchive extracts an archive payload into path -> content, recording
// which entries carry the executable bit.
func UnzipArchive(t *testing.T, payload []byte) (map[string]string, map[string]bool) {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	contents := make(map[string]string, len(reader.File))
	executable := make(map[string]bool, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)

		contents[f.Name] = string(data)
		executable[f.Name] = f.Mode()&0o111 != 0
	}
	return contents, executable
}

// OpenStore opens a profile store backed by a database file under dir.
func OpenStore(t *testing.T, dir, passphrase string) store.Store {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(dir, "profiles.db"), passphrase)
	require.NoError(t, err)
	return st
}
