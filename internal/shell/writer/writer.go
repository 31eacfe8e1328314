// Package writer materializes a planned bundle on the local filesystem,
// either as the directory tree a deployment runs from or as a packaged
// archive file. It holds no rendering logic; content arrives fully planned.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odooforge/odooforge/internal/core/archive"
)

const dirMode = 0o755

// modeFor returns the permission bits for one bundle file: scripts get the
// executable bit and the env file holds credentials, so it stays private.
func modeFor(entry archive.Entry) os.FileMode {
	if entry.Executable {
		return 0o755
	}
	if filepath.Base(entry.Path) == ".env" {
		return 0o600
	}
	return 0o644
}

// WriteTree writes the planned entries under dir and returns the path of
// the created project folder. Existing files are overwritten, so
// regenerating into the same directory refreshes a bundle in place.
func WriteTree(dir string, manifest archive.Manifest, entries []archive.Entry) (string, error) {
	for _, entry := range entries {
		target := filepath.Join(dir, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
			return "", fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(entry.Content), modeFor(entry)); err != nil {
			return "", fmt.Errorf("writing %s: %w", target, err)
		}
		// WriteFile leaves the old mode on an overwritten file
		if err := os.Chmod(target, modeFor(entry)); err != nil {
			return "", fmt.Errorf("setting mode on %s: %w", target, err)
		}
	}
	return filepath.Join(dir, manifest.Root), nil
}

// WriteArchive writes packaged bundle bytes to path, creating parent
// directories as needed.
func WriteArchive(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
