// Package e2e exercises the synthesis pipeline the way the CLI does:
// generate a bundle, write it to disk, cross-check it, persist the
// parameters, and regenerate from the saved profile.
//
// The tests touch only temporary directories. Run with:
//
//	go test -v ./tests/e2e/...
package e2e

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/core/verify"
	"github.com/odooforge/odooforge/internal/shell/writer"
)

// =============================================================================
// Pipeline Tests
// =============================================================================

// TestE2E_GenerateWriteVerify runs the full flow for a stack with every
// optional service enabled: synthesize, write the tree, verify consistency.
func TestE2E_GenerateWriteVerify(t *testing.T) {
	cfg := FullStack("acme-erp")

	result := GenerateBundle(t, cfg)
	require.NotEmpty(t, result.Archive)
	assert.Empty(t, result.Generated, "fixed credentials must not be regenerated")

	root := WriteBundle(t, result)
	assert.Equal(t, "acme-erp", filepath.Base(root))

	// Every rendered artifact lands at its bundle path
	for _, artifact := range result.Artifacts {
		assert.Equal(t, artifact.Content, ReadBundleFile(t, root, artifact.Path))
	}

	// Runtime folders exist even though no artifact targets them
	for _, folder := range []string{"logs", "addons", "nginx/ssl"} {
		info, err := os.Stat(filepath.Join(root, folder))
		require.NoError(t, err, folder)
		assert.True(t, info.IsDir())
	}

	findings := verify.Bundle(cfg, result.Artifacts)
	assert.Empty(t, findings)

	t.Log("PASS: Full bundle generated, written, and verified")
}

// TestE2E_ArchiveMatchesTree confirms the zip payload and the written tree
// are two renderings of the same plan.
func TestE2E_ArchiveMatchesTree(t *testing.T) {
	result := GenerateBundle(t, FullStack("acme-erp"))
	root := WriteBundle(t, result)

	contents, executable := UnzipArchive(t, result.Archive)
	require.NotEmpty(t, contents)

	for path, content := range contents {
		rel, err := filepath.Rel("acme-erp", path)
		require.NoError(t, err)

		onDisk, err := os.ReadFile(filepath.Join(root, rel))
		require.NoError(t, err, path)
		assert.Equal(t, content, string(onDisk), path)
	}

	assert.True(t, executable["acme-erp/setup.sh"])
	assert.False(t, executable["acme-erp/.env"])

	t.Log("PASS: Archive and tree hold identical bundles")
}

// TestE2E_DeterministicAcrossRuns confirms two runs over the same parameters
// produce byte-identical bundles.
func TestE2E_DeterministicAcrossRuns(t *testing.T) {
	cfg := FullStack("acme-erp")

	first := GenerateBundle(t, cfg)
	second := GenerateBundle(t, cfg)

	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.Equal(t, first.Archive, second.Archive)

	t.Log("PASS: Generation is deterministic")
}

// TestE2E_DevelopmentModeBundle runs the pipeline for a zero-worker stack
// with no optional services.
func TestE2E_DevelopmentModeBundle(t *testing.T) {
	cfg := MinimalStack("dev-box")

	result := GenerateBundle(t, cfg)
	root := WriteBundle(t, result)

	// No proxy config and no nginx folders for a minimal stack
	_, err := os.Stat(filepath.Join(root, "nginx"))
	assert.True(t, os.IsNotExist(err))

	conf := ReadBundleFile(t, root, "config/odoo.conf")
	assert.Contains(t, conf, "workers = 0")

	findings := verify.Bundle(cfg, result.Artifacts)
	assert.Empty(t, findings)

	t.Log("PASS: Development-mode bundle generated and verified")
}

// TestE2E_ValidationStopsPipeline confirms an invalid configuration aborts
// before anything is rendered.
func TestE2E_ValidationStopsPipeline(t *testing.T) {
	cfg := FullStack("Bad Name!")

	_, err := synth.Run(cfg, synth.Options{})
	require.Error(t, err)

	var vErr *synth.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotEmpty(t, vErr.Violations)

	t.Log("PASS: Invalid parameters rejected before rendering")
}

// =============================================================================
// Profile Round-Trip Tests
// =============================================================================

// TestE2E_ProfileRoundTrip saves a configuration, reopens the store, and
// regenerates an identical bundle from the stored profile.
func TestE2E_ProfileRoundTrip(t *testing.T) {
	cfg := FullStack("acme-erp")
	original := GenerateBundle(t, cfg)

	ctx := context.Background()
	dir := t.TempDir()

	// Save
	st := OpenStore(t, dir, "e2e-passphrase")
	profile := domain.NewProfile("production", cfg)
	require.NoError(t, st.CreateProfile(ctx, profile))
	require.NoError(t, st.Close())

	// Reopen and regenerate
	st = OpenStore(t, dir, "e2e-passphrase")
	defer st.Close()

	loaded, err := st.GetProfileByName(ctx, "production")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded.Config)

	regenerated := GenerateBundle(t, loaded.Config)
	assert.Equal(t, original.Artifacts, regenerated.Artifacts)
	assert.Equal(t, original.Archive, regenerated.Archive)

	t.Log("PASS: Stored profile reproduces the original bundle")
}

// TestE2E_RegeneratedBundleOverwritesCleanly writes a bundle twice into the
// same output directory and checks the second write fully replaces the first.
func TestE2E_RegeneratedBundleOverwritesCleanly(t *testing.T) {
	outDir := t.TempDir()

	cfg := FullStack("acme-erp")
	result := GenerateBundle(t, cfg)
	manifest, entries, err := archive.Plan(result.Artifacts, result.Config)
	require.NoError(t, err)
	_, err = writer.WriteTree(outDir, manifest, entries)
	require.NoError(t, err)

	cfg.HTTPPort = 9069
	cfg.ChatPort = 9072
	updated := GenerateBundle(t, cfg)
	manifest, entries, err = archive.Plan(updated.Artifacts, updated.Config)
	require.NoError(t, err)
	root, err := writer.WriteTree(outDir, manifest, entries)
	require.NoError(t, err)

	env := ReadBundleFile(t, root, ".env")
	assert.Contains(t, env, "HTTP_PORT=9069")
	assert.NotContains(t, env, "HTTP_PORT=8069")

	findings := verify.Bundle(cfg, updated.Artifacts)
	assert.Empty(t, findings)

	t.Log("PASS: Regeneration overwrites the previous bundle")
}
