package verify

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/render"
)

func testConfig() domain.StackConfig {
	cfg := domain.NewStackConfig()
	cfg.ProjectName = "acme"
	cfg.DBPassword = "pg-secret-value!"
	cfg.AdminPassword = "admin-secret-value!"
	return cfg
}

// tamper replaces old with new inside one artifact and returns the set.
func tamper(t *testing.T, artifacts domain.Artifacts, path, old, replacement string) domain.Artifacts {
	t.Helper()
	tampered := make(domain.Artifacts, len(artifacts))
	copy(tampered, artifacts)
	for i, a := range tampered {
		if a.Path != path {
			continue
		}
		require.Contains(t, a.Content, old, "tamper target not found in %s", path)
		tampered[i].Content = strings.Replace(a.Content, old, replacement, 1)
		return tampered
	}
	t.Fatalf("artifact %s not found", path)
	return nil
}

// drop removes one artifact from the set.
func drop(artifacts domain.Artifacts, path string) domain.Artifacts {
	var kept domain.Artifacts
	for _, a := range artifacts {
		if a.Path != path {
			kept = append(kept, a)
		}
	}
	return kept
}

func findingFor(t *testing.T, findings []error, sentinel error) *Finding {
	t.Helper()
	for _, err := range findings {
		var finding *Finding
		if errors.As(err, &finding) && errors.Is(err, sentinel) {
			return finding
		}
	}
	t.Fatalf("no finding wrapping %v in %v", sentinel, findings)
	return nil
}

func hasFinding(findings []error, sentinel error) bool {
	for _, err := range findings {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// =============================================================================
// Clean Bundle Tests
// =============================================================================

func TestBundle_CleanForDefaults(t *testing.T) {
	cfg := testConfig()

	findings := Bundle(cfg, render.All(cfg))

	assert.Empty(t, findings)
}

func TestBundle_CleanAcrossConfigurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.StackConfig)
	}{
		{"redis enabled", func(c *domain.StackConfig) { c.EnableRedis = true }},
		{"nginx enabled", func(c *domain.StackConfig) { c.EnableNginx = true; c.Domain = "erp.example.com" }},
		{"everything enabled", func(c *domain.StackConfig) {
			c.EnableRedis = true
			c.EnableNginx = true
			c.EnablePostgresPort = true
		}},
		{"database port published", func(c *domain.StackConfig) { c.EnablePostgresPort = true }},
		{"custom ports", func(c *domain.StackConfig) { c.HTTPPort = 9000; c.ChatPort = 9001 }},
		{"minimum memory", func(c *domain.StackConfig) { c.MemoryLimitGB = 1 }},
		{"large memory", func(c *domain.StackConfig) { c.MemoryLimitGB = 16 }},
		{"dev mode workers", func(c *domain.StackConfig) { c.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			findings := Bundle(cfg, render.All(cfg))

			assert.Empty(t, findings)
		})
	}
}

func TestBundle_CleanWithSymbolHeavyCredentials(t *testing.T) {
	// $ must survive the compose round-trip without being treated as an
	// interpolation marker, and leading ! must survive YAML parsing.
	cfg := testConfig()
	cfg.DBPassword = "!pa$$word*with#symbols"
	cfg.AdminPassword = "a@dmin^secret&value%42"

	findings := Bundle(cfg, render.All(cfg))

	assert.Empty(t, findings)
}

// =============================================================================
// Orchestration File Findings
// =============================================================================

func TestBundle_UnparseableComposeFile(t *testing.T) {
	cfg := testConfig()
	artifacts := render.All(cfg)
	for i := range artifacts {
		if artifacts[i].Path == domain.PathCompose {
			artifacts[i].Content = "services: [not, a, mapping"
		}
	}

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrComposeInvalid)
	assert.Equal(t, domain.PathCompose, finding.Artifact)
}

func TestBundle_TamperedWebPort(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPPort = 9000
	artifacts := tamper(t, render.All(cfg), domain.PathCompose, `"9000:8069"`, `"9999:8069"`)

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrPortMapping)
	assert.Contains(t, finding.Message, "9000:8069")
}

func TestBundle_MissingServiceReported(t *testing.T) {
	cfg := testConfig()
	artifacts := render.All(cfg) // rendered without redis
	cfg.EnableRedis = true       // configuration now expects it

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrServiceSet)
	assert.Contains(t, finding.Message, `"redis"`)
}

func TestBundle_ExtraServiceReported(t *testing.T) {
	cfg := testConfig()
	cfg.EnableRedis = true
	artifacts := render.All(cfg) // rendered with redis
	cfg.EnableRedis = false      // configuration no longer wants it

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrServiceSet)
	assert.Contains(t, finding.Message, `"redis"`)
	assert.Contains(t, finding.Message, "not called for")
}

func TestBundle_DatabaseExposureMismatch(t *testing.T) {
	cfg := testConfig()
	artifacts := render.All(cfg) // internal-only database
	cfg.EnablePostgresPort = true

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrPortMapping)
	assert.Contains(t, finding.Message, "should be published")
}

func TestBundle_TamperedDatabasePassword(t *testing.T) {
	cfg := testConfig()
	artifacts := tamper(t, render.All(cfg), domain.PathCompose,
		`POSTGRES_PASSWORD: "pg-secret-value!"`,
		`POSTGRES_PASSWORD: "wrong-password!"`)

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrValueMismatch)
	assert.Contains(t, finding.Message, "POSTGRES_PASSWORD")
}

func TestBundle_TamperedMemoryLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MemoryLimitGB = 4
	artifacts := tamper(t, render.All(cfg), domain.PathCompose, "memory: 4G", "memory: 8G")

	findings := Bundle(cfg, artifacts)

	assert.True(t, hasFinding(findings, ErrLimitMismatch))
}

// =============================================================================
// Cross-Artifact Findings
// =============================================================================

func TestBundle_TamperedEnvPassword(t *testing.T) {
	cfg := testConfig()
	artifacts := tamper(t, render.All(cfg), domain.PathEnv,
		"DB_PASSWORD=pg-secret-value!",
		"DB_PASSWORD=drifted-value!")

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrValueMismatch)
	assert.Equal(t, domain.PathEnv, finding.Artifact)
	assert.Contains(t, finding.Message, "DB_PASSWORD")
}

func TestBundle_TamperedWorkerCount(t *testing.T) {
	cfg := testConfig()
	artifacts := tamper(t, render.All(cfg), domain.PathOdooConf, "workers = 2", "workers = 8")

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrValueMismatch)
	assert.Equal(t, domain.PathOdooConf, finding.Artifact)
	assert.Contains(t, finding.Message, "workers")
}

func TestBundle_ProxyModeMustTrackToggle(t *testing.T) {
	cfg := testConfig()
	cfg.EnableNginx = true
	artifacts := tamper(t, render.All(cfg), domain.PathOdooConf,
		"proxy_mode = True",
		"proxy_mode = False")

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrProxyConfig)
	assert.Equal(t, domain.PathOdooConf, finding.Artifact)
}

func TestBundle_SetupScriptReportsAccessURL(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPPort = 9000
	artifacts := tamper(t, render.All(cfg), domain.PathSetup,
		"http://localhost:9000",
		"http://localhost:8069")

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrValueMismatch)
	assert.Equal(t, domain.PathSetup, finding.Artifact)
}

// =============================================================================
// Bundle Shape Findings
// =============================================================================

func TestBundle_MissingEnvFile(t *testing.T) {
	cfg := testConfig()
	artifacts := drop(render.All(cfg), domain.PathEnv)

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrArtifactMissing)
	assert.Equal(t, domain.PathEnv, finding.Artifact)
}

func TestBundle_ProxyArtifactWithoutToggle(t *testing.T) {
	cfg := testConfig()
	cfg.EnableNginx = true
	artifacts := render.All(cfg)
	cfg.EnableNginx = false

	findings := Bundle(cfg, artifacts)

	assert.True(t, hasFinding(findings, ErrArtifactUnexpected))
}

func TestBundle_MissingProxyArtifactWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableNginx = true
	artifacts := drop(render.All(cfg), domain.PathNginxConf)

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrArtifactMissing)
	assert.Equal(t, domain.PathNginxConf, finding.Artifact)
}

func TestBundle_TamperedServerName(t *testing.T) {
	cfg := testConfig()
	cfg.EnableNginx = true
	cfg.Domain = "erp.example.com"
	artifacts := tamper(t, render.All(cfg), domain.PathNginxConf,
		"server_name erp.example.com;",
		"server_name other.example.com;")

	findings := Bundle(cfg, artifacts)

	finding := findingFor(t, findings, ErrProxyConfig)
	assert.Equal(t, domain.PathNginxConf, finding.Artifact)
}

// =============================================================================
// Parser Helper Tests
// =============================================================================

func TestParseEnvFile(t *testing.T) {
	values := parseEnvFile("# comment\n\nKEY=value\nPASSWORD=a=b=c\nNOEQUALS\n")

	assert.Equal(t, map[string]string{
		"KEY":      "value",
		"PASSWORD": "a=b=c",
	}, values)
}

func TestParseConfFile(t *testing.T) {
	values := parseConfFile("[options]\n; comment\nworkers = 2\ndbfilter = ^acme$\n")

	assert.Equal(t, map[string]string{
		"workers":  "2",
		"dbfilter": "^acme$",
	}, values)
}
