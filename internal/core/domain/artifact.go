package domain

// =============================================================================
// Artifact Paths
// =============================================================================

// Canonical bundle-relative paths of the generated artifacts. The renderers
// emit them, the assembler lays them out, and the consistency checker looks
// them up by these constants.
const (
	PathCompose   = "docker-compose.yml"
	PathEnv       = ".env"
	PathOdooConf  = "config/odoo.conf"
	PathSetup     = "setup.sh"
	PathGitignore = ".gitignore"
	PathNginxConf = "nginx/nginx.conf"
)

// =============================================================================
// Artifact
// =============================================================================

// Artifact is one generated text file, addressed by its bundle-relative
// path. Artifacts are produced fresh on every synthesis run and never
// mutated after creation.
type Artifact struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Artifacts is an ordered collection of generated files. Order is the
// render order and is stable for a given configuration.
type Artifacts []Artifact

// Find returns the artifact at the given bundle-relative path.
func (a Artifacts) Find(path string) (Artifact, bool) {
	for _, artifact := range a {
		if artifact.Path == path {
			return artifact, true
		}
	}
	return Artifact{}, false
}

// Paths returns the artifact paths in collection order.
func (a Artifacts) Paths() []string {
	paths := make([]string, len(a))
	for i, artifact := range a {
		paths[i] = artifact.Path
	}
	return paths
}
