package verify

import (
	"fmt"
	"strings"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Bundle Verification
// =============================================================================

// Bundle cross-checks every rendered artifact against the configuration it
// was rendered from and returns all findings in artifact order. An empty
// result means the bundle is internally consistent.
//
// This is a pure function with no side effects.
//
// Example:
//
//	findings := verify.Bundle(cfg, result.Artifacts)
//	for _, f := range findings {
//	    fmt.Println(f)
//	}
func Bundle(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	var findings []error
	findings = append(findings, checkCompose(cfg, artifacts)...)
	findings = append(findings, checkEnv(cfg, artifacts)...)
	findings = append(findings, checkConf(cfg, artifacts)...)
	findings = append(findings, checkSetup(cfg, artifacts)...)
	findings = append(findings, checkNginx(cfg, artifacts)...)
	return findings
}

// checkSetup confirms the bootstrap script reports the same endpoint the
// configuration derives, so the final "open this URL" line never lies.
func checkSetup(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	artifact, ok := artifacts.Find(domain.PathSetup)
	if !ok {
		return []error{NewFinding(domain.PathSetup, "artifact not rendered", ErrArtifactMissing)}
	}

	var findings []error
	if !strings.Contains(artifact.Content, cfg.AccessURL()) {
		findings = append(findings, NewFinding(domain.PathSetup,
			fmt.Sprintf("script does not report the access URL %s", cfg.AccessURL()),
			ErrValueMismatch))
	}
	return findings
}

// checkNginx confirms the proxy artifact tracks the toggle: present and
// routing to the right upstreams when enabled, absent when disabled.
func checkNginx(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	artifact, ok := artifacts.Find(domain.PathNginxConf)

	if !cfg.EnableNginx {
		if ok {
			return []error{NewFinding(domain.PathNginxConf,
				"reverse proxy is disabled but the artifact was rendered",
				ErrArtifactUnexpected)}
		}
		return nil
	}

	if !ok {
		return []error{NewFinding(domain.PathNginxConf, "artifact not rendered", ErrArtifactMissing)}
	}

	var findings []error

	if !strings.Contains(artifact.Content, "server_name "+cfg.ServerName()+";") {
		findings = append(findings, NewFinding(domain.PathNginxConf,
			fmt.Sprintf("server_name does not match %q", cfg.ServerName()),
			ErrProxyConfig))
	}

	upstreams := []string{
		fmt.Sprintf("server %s:%d;", domain.ServiceWeb, odooHTTPTarget),
		fmt.Sprintf("server %s:%d;", domain.ServiceWeb, odooChatTarget),
	}
	for _, upstream := range upstreams {
		if !strings.Contains(artifact.Content, upstream) {
			findings = append(findings, NewFinding(domain.PathNginxConf,
				fmt.Sprintf("missing upstream %q", upstream),
				ErrProxyConfig))
		}
	}

	return findings
}
