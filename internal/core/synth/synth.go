// Package synth runs the bundle synthesis pipeline: fill absent credentials,
// validate the configuration, render every artifact, and package the archive.
//
// The pipeline is the single entry point adapters use to turn a StackConfig
// into a deployment bundle. Apart from the credential generator's random
// source it performs no I/O; rendering and assembly stay pure.
package synth

import (
	"fmt"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/render"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/validate"
)

// =============================================================================
// Options and Result
// =============================================================================

// Options configures a synthesis run. The zero value selects a fresh
// credential generator and the zip packager.
type Options struct {
	// Secrets generates credentials for fields the caller left empty.
	// Nil selects secret.New().
	Secrets *secret.Generator

	// Packager turns the planned bundle entries into archive bytes.
	// Nil selects archive.NewZipPackager().
	Packager archive.Packager
}

// Result is the output of one synthesis run.
type Result struct {
	// Config is the final configuration snapshot, including any credentials
	// the generator filled in.
	Config domain.StackConfig

	// Generated lists the credential fields that were filled by the
	// generator rather than supplied by the caller.
	Generated []string

	// Artifacts holds every rendered file in bundle order.
	Artifacts domain.Artifacts

	// Manifest describes the bundle layout under the project root.
	Manifest archive.Manifest

	// Archive is the packaged bundle. Nil when packaging failed; the
	// rendered artifacts above remain valid and usable on their own.
	Archive []byte
}

// =============================================================================
// Run
// =============================================================================

// Run executes the synthesis pipeline for one configuration.
//
// Credentials the caller left empty are generated first, so a fresh run
// needs nothing beyond a project name. Validation then inspects the filled
// snapshot; any violation aborts the run with a *ValidationError before a
// single artifact is rendered.
//
// A packaging failure does not discard the run: the returned Result carries
// the rendered artifacts and the bundle manifest next to the error, so
// callers can fall back to writing the files individually.
//
// Example:
//
//	cfg := domain.NewStackConfig()
//	cfg.ProjectName = "acme"
//	result, err := synth.Run(cfg, synth.Options{})
//	if err != nil {
//	    var verr *synth.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Println(verr.Violations[0])
//	    }
//	    return err
//	}
//	os.WriteFile("acme.zip", result.Archive, 0o644)
func Run(cfg domain.StackConfig, opts Options) (Result, error) {
	generator := opts.Secrets
	if generator == nil {
		generator = secret.New()
	}
	packager := opts.Packager
	if packager == nil {
		packager = archive.NewZipPackager()
	}

	cfg, generated := fillCredentials(cfg, generator)

	if violations := validate.Validate(cfg); len(violations) > 0 {
		return Result{}, &ValidationError{Violations: violations}
	}

	artifacts := render.All(cfg)

	result := Result{
		Config:    cfg,
		Generated: generated,
		Artifacts: artifacts,
	}

	manifest, payload, err := archive.Assemble(artifacts, cfg, packager)
	result.Manifest = manifest
	if err != nil {
		return result, fmt.Errorf("packaging %s bundle: %w", cfg.ProjectName, err)
	}
	result.Archive = payload

	return result, nil
}

// fillCredentials generates a value for each credential field the caller
// left empty and reports which fields were filled. A configuration with
// both credentials set passes through untouched.
func fillCredentials(cfg domain.StackConfig, generator *secret.Generator) (domain.StackConfig, []string) {
	var generated []string
	if cfg.DBPassword == "" {
		cfg.DBPassword = generator.GenerateDefault()
		generated = append(generated, "db_password")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = generator.GenerateDefault()
		generated = append(generated, "admin_password")
	}
	return cfg, generated
}
