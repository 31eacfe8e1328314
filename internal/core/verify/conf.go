package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Server Configuration Checks
// =============================================================================

// parseConfFile reads "key = value" lines from an ini-style document,
// skipping section headers, blanks, and ; comments.
func parseConfFile(content string) map[string]string {
	values := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}

// checkConf confirms the Odoo server configuration agrees with the
// snapshot: credentials, worker counts, the derived memory limits, and the
// proxy flag that must track the reverse proxy toggle.
func checkConf(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	artifact, ok := artifacts.Find(domain.PathOdooConf)
	if !ok {
		return []error{NewFinding(domain.PathOdooConf, "artifact not rendered", ErrArtifactMissing)}
	}

	values := parseConfFile(artifact.Content)

	checks := []struct {
		key  string
		want string
	}{
		{"admin_passwd", cfg.AdminPassword},
		{"db_user", cfg.DBUser},
		{"db_password", cfg.DBPassword},
		{"db_name", cfg.DBName},
		{"dbfilter", "^" + cfg.DBName + "$"},
		{"workers", strconv.Itoa(cfg.Workers)},
		{"max_cron_threads", strconv.Itoa(cfg.CronThreads)},
		{"limit_memory_hard", strconv.FormatInt(cfg.MemoryHardBytes(), 10)},
		{"limit_memory_soft", strconv.FormatInt(cfg.MemorySoftBytes(), 10)},
		{"log_level", string(cfg.LogLevel)},
	}

	var findings []error
	for _, check := range checks {
		got, ok := values[check.key]
		if !ok {
			findings = append(findings, NewFinding(domain.PathOdooConf,
				fmt.Sprintf("%s is missing", check.key),
				ErrValueMismatch))
			continue
		}
		if got != check.want {
			findings = append(findings, NewFinding(domain.PathOdooConf,
				fmt.Sprintf("%s is %q, configuration says %q", check.key, got, check.want),
				ErrValueMismatch))
		}
	}

	wantProxy := "False"
	if cfg.EnableNginx {
		wantProxy = "True"
	}
	if values["proxy_mode"] != wantProxy {
		findings = append(findings, NewFinding(domain.PathOdooConf,
			fmt.Sprintf("proxy_mode is %q but the reverse proxy toggle says %s", values["proxy_mode"], wantProxy),
			ErrProxyConfig))
	}

	return findings
}
