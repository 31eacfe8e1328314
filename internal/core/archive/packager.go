package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// =============================================================================
// Packager
// =============================================================================

// Packager compresses planned bundle entries into a single archive payload.
// It is injected into Assemble so the packaging step can be swapped and
// tests can run against a fake.
type Packager interface {
	// Pack writes all entries into one archive and returns its bytes.
	// Implementations must not produce a partial archive: any failure
	// returns an error and no payload.
	Pack(entries []Entry) ([]byte, error)
}

// =============================================================================
// ZipPackager
// =============================================================================

// ZipPackager packages entries as a zip archive. Entry timestamps are left
// zeroed so identical bundles produce identical archives; the bootstrap
// script keeps its executable bit through the unix mode field.
type ZipPackager struct{}

// NewZipPackager creates the default Packager.
func NewZipPackager() *ZipPackager {
	return &ZipPackager{}
}

// Pack implements Packager.
func (z *ZipPackager) Pack(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:   entry.Path,
			Method: zip.Deflate,
		}
		if entry.Executable {
			header.SetMode(0o755)
		} else {
			header.SetMode(0o644)
		}

		f, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %s: %w", entry.Path, err)
		}
		if _, err := f.Write([]byte(entry.Content)); err != nil {
			return nil, fmt.Errorf("writing archive entry %s: %w", entry.Path, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
