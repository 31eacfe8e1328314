package archive

import (
	"fmt"
	"path"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Bundle Layout
// =============================================================================

// rootFileOrder fixes the order of root-level artifacts in the bundle.
var rootFileOrder = []string{
	domain.PathCompose,
	domain.PathEnv,
	domain.PathSetup,
	domain.PathGitignore,
}

// layout returns the folder map for a config: config/ holds the application
// config, logs/ and addons/ are always created for the runtime to fill, and
// the proxy folders exist iff the proxy is enabled.
func layout(cfg domain.StackConfig) map[string][]string {
	folders := map[string][]string{
		"config": {domain.PathOdooConf},
		"logs":   {},
		"addons": {},
	}
	if cfg.EnableNginx {
		folders["nginx"] = []string{domain.PathNginxConf}
		folders["nginx/ssl"] = []string{}
	}
	return folders
}

// =============================================================================
// Plan
// =============================================================================

// Plan lays the rendered artifacts out as bundle entries under a single
// top-level folder named after the project. Folders that no artifact
// targets receive a synthesized placeholder document. The bootstrap script
// is the only executable entry.
//
// Planning is all-or-nothing: a missing expected artifact or an artifact
// outside the layout aborts with an *AssembleError instead of producing a
// partially populated bundle.
//
// This is a pure function with no side effects.
func Plan(artifacts domain.Artifacts, cfg domain.StackConfig) (Manifest, []Entry, error) {
	manifest := Manifest{
		Root:      cfg.ProjectName,
		RootFiles: append([]string(nil), rootFileOrder...),
		Folders:   layout(cfg),
	}

	if err := checkComplete(artifacts, manifest); err != nil {
		return Manifest{}, nil, err
	}

	var entries []Entry

	for _, artifactPath := range manifest.RootFiles {
		artifact, _ := artifacts.Find(artifactPath)
		entries = append(entries, Entry{
			Path:       path.Join(manifest.Root, artifact.Path),
			Content:    artifact.Content,
			Executable: artifact.Path == domain.PathSetup,
		})
	}

	for _, folder := range manifest.FolderPaths() {
		for _, artifactPath := range manifest.Folders[folder] {
			artifact, _ := artifacts.Find(artifactPath)
			entries = append(entries, Entry{
				Path:    path.Join(manifest.Root, artifact.Path),
				Content: artifact.Content,
			})
		}
		if len(manifest.Folders[folder]) == 0 {
			entries = append(entries, Entry{
				Path:    path.Join(manifest.Root, folder, placeholderName),
				Content: placeholderDoc(folder),
			})
		}
	}

	return manifest, entries, nil
}

// checkComplete verifies the artifact set matches the layout exactly: every
// expected path present, nothing extra. Checks run in bundle order so the
// reported path is stable.
func checkComplete(artifacts domain.Artifacts, manifest Manifest) error {
	var orderedExpected []string
	orderedExpected = append(orderedExpected, manifest.RootFiles...)
	for _, folder := range manifest.FolderPaths() {
		orderedExpected = append(orderedExpected, manifest.Folders[folder]...)
	}

	expected := map[string]bool{}
	for _, p := range orderedExpected {
		expected[p] = true
		if _, ok := artifacts.Find(p); !ok {
			return NewAssembleError(p,
				fmt.Sprintf("artifact %q is required by the bundle layout", p),
				ErrMissingArtifact)
		}
	}
	for _, artifact := range artifacts {
		if !expected[artifact.Path] {
			return NewAssembleError(artifact.Path,
				fmt.Sprintf("artifact %q has no place in the bundle layout", artifact.Path),
				ErrUnexpectedArtifact)
		}
	}
	return nil
}

// =============================================================================
// Assemble
// =============================================================================

// Assemble plans the bundle and packages it with the injected Packager.
// On packaging failure the manifest from the successful plan is still
// returned next to the error (wrapped in ErrPackaging), because the rendered
// artifacts stay valid and callers fall back to per-file output.
func Assemble(artifacts domain.Artifacts, cfg domain.StackConfig, p Packager) (Manifest, []byte, error) {
	manifest, entries, err := Plan(artifacts, cfg)
	if err != nil {
		return Manifest{}, nil, err
	}

	payload, err := p.Pack(entries)
	if err != nil {
		return manifest, nil, NewAssembleError("", fmt.Sprintf("packaging bundle: %v", err), ErrPackaging)
	}
	return manifest, payload, nil
}
