// Package archive lays rendered artifacts out as a downloadable bundle.
//
// This package contains the functional core assembly logic plus the one
// injected capability of a synthesis run: the Packager that turns planned
// entries into archive bytes. Planning is pure; only Pack touches a real
// compressor.
package archive

import "sort"

// =============================================================================
// Manifest
// =============================================================================

// Manifest describes the bundle layout: which artifacts sit at the bundle
// root and which live in folders. Folder lists may be empty; the packaged
// output never contains a truly empty folder because planning synthesizes a
// placeholder document into each one.
type Manifest struct {
	// Root is the single top-level folder, named after the project.
	Root string `json:"root"`

	// RootFiles are bundle-relative artifact paths placed directly under
	// Root, in bundle order.
	RootFiles []string `json:"root_files"`

	// Folders maps folder paths to the artifact paths they hold. A key
	// with an empty list is a structurally-required folder populated
	// only at runtime.
	Folders map[string][]string `json:"folders"`
}

// FolderPaths returns the folder paths in lexical order.
func (m Manifest) FolderPaths() []string {
	paths := make([]string, 0, len(m.Folders))
	for path := range m.Folders {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// EmptyFolders returns the folders no artifact targets, in lexical order.
// These are the ones that receive placeholder documents.
func (m Manifest) EmptyFolders() []string {
	var empty []string
	for _, path := range m.FolderPaths() {
		if len(m.Folders[path]) == 0 {
			empty = append(empty, path)
		}
	}
	return empty
}

// =============================================================================
// Entry
// =============================================================================

// Entry is one file of the packaged bundle: an archive path (already under
// the root folder), its content, and whether it needs the executable bit.
type Entry struct {
	Path       string
	Content    string
	Executable bool
}
