package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Environment File Checks
// =============================================================================

// parseEnvFile reads KEY=VALUE lines, skipping blanks and # comments.
// Values keep everything after the first '=' untouched, so generated
// credentials survive round-tripping.
func parseEnvFile(content string) map[string]string {
	values := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[key] = value
	}
	return values
}

// checkEnv confirms the environment file restates the configuration
// verbatim. The file is the canonical place operators look up ports and
// credentials, so any drift between it and the other artifacts is a defect.
func checkEnv(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	artifact, ok := artifacts.Find(domain.PathEnv)
	if !ok {
		return []error{NewFinding(domain.PathEnv, "artifact not rendered", ErrArtifactMissing)}
	}

	values := parseEnvFile(artifact.Content)

	checks := []struct {
		key  string
		want string
	}{
		{"PROJECT_NAME", cfg.ProjectName},
		{"ODOO_VERSION", cfg.OdooVersion},
		{"HTTP_PORT", strconv.Itoa(cfg.HTTPPort)},
		{"CHAT_PORT", strconv.Itoa(cfg.ChatPort)},
		{"DOMAIN", cfg.Domain},
		{"DB_NAME", cfg.DBName},
		{"DB_USER", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
		{"POSTGRES_PORT_EXPOSED", strconv.FormatBool(cfg.EnablePostgresPort)},
		{"WORKERS", strconv.Itoa(cfg.Workers)},
		{"CRON_THREADS", strconv.Itoa(cfg.CronThreads)},
		{"MEMORY_LIMIT_GB", strconv.Itoa(cfg.MemoryLimitGB)},
		{"LOG_LEVEL", string(cfg.LogLevel)},
		{"REDIS_ENABLED", strconv.FormatBool(cfg.EnableRedis)},
		{"NGINX_ENABLED", strconv.FormatBool(cfg.EnableNginx)},
	}

	var findings []error
	for _, check := range checks {
		got, ok := values[check.key]
		if !ok {
			findings = append(findings, NewFinding(domain.PathEnv,
				fmt.Sprintf("%s is missing", check.key),
				ErrValueMismatch))
			continue
		}
		if got != check.want {
			findings = append(findings, NewFinding(domain.PathEnv,
				fmt.Sprintf("%s is %q, configuration says %q", check.key, got, check.want),
				ErrValueMismatch))
		}
	}
	return findings
}
