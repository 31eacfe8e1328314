package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/validate"
)

// =============================================================================
// Form State Tests
// =============================================================================

func TestNewFormState_CarriesDefaults(t *testing.T) {
	state := newFormState(domain.NewStackConfig(), secret.New())

	assert.Equal(t, "17.0", state.odooVersion)
	assert.Equal(t, "8069", state.httpPort)
	assert.Equal(t, "8072", state.chatPort)
	assert.Equal(t, "odoo", state.dbName)
	assert.Equal(t, "odoo", state.dbUser)
	assert.Equal(t, "2", state.workers)
	assert.Equal(t, "2", state.cronThreads)
	assert.Equal(t, "2", state.memoryGB)
	assert.Equal(t, "info", state.logLevel)
	assert.Empty(t, state.projectName)
	assert.Empty(t, state.domain)
}

func TestNewFormState_PrefillsGeneratedCredentials(t *testing.T) {
	state := newFormState(domain.NewStackConfig(), secret.New())

	assert.Len(t, state.dbPassword, secret.DefaultLength)
	assert.Len(t, state.adminPassword, secret.DefaultLength)
	assert.NotEqual(t, state.dbPassword, state.adminPassword)

	// Suggestions already satisfy the secret rules
	assert.NoError(t, validate.Secret("db_password", state.dbPassword))
	assert.NoError(t, validate.Secret("admin_password", state.adminPassword))
}

func TestFormState_ToConfig(t *testing.T) {
	state := newFormState(domain.NewStackConfig(), secret.New())
	state.projectName = "my-shop"
	state.domain = "erp.example.com"
	state.exposeDB = true
	state.enableRedis = true
	state.enableNginx = true

	cfg, err := state.toConfig()
	require.NoError(t, err)

	assert.Equal(t, "my-shop", cfg.ProjectName)
	assert.Equal(t, "17.0", cfg.OdooVersion)
	assert.Equal(t, 8069, cfg.HTTPPort)
	assert.Equal(t, 8072, cfg.ChatPort)
	assert.Equal(t, "erp.example.com", cfg.Domain)
	assert.True(t, cfg.EnablePostgresPort)
	assert.True(t, cfg.EnableRedis)
	assert.True(t, cfg.EnableNginx)
	assert.Equal(t, domain.LogLevelInfo, cfg.LogLevel)

	// Accepting every suggestion yields a valid config
	assert.Empty(t, validate.Validate(cfg))
}

func TestFormState_ToConfigTrimsInput(t *testing.T) {
	state := newFormState(domain.NewStackConfig(), secret.New())
	state.projectName = "my-shop"
	state.httpPort = " 9000 "
	state.dbName = "erp "

	cfg, err := state.toConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "erp", cfg.DBName)
}

func TestFormState_ToConfigRejectsNonNumeric(t *testing.T) {
	state := newFormState(domain.NewStackConfig(), secret.New())
	state.projectName = "my-shop"
	state.workers = "many"

	_, err := state.toConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

// =============================================================================
// Inline Rule Tests
// =============================================================================

func TestNumericField(t *testing.T) {
	rule := numericField("workers", validate.Workers)

	assert.NoError(t, rule("2"))
	assert.NoError(t, rule(" 0 "))
	assert.ErrorIs(t, rule("1"), validate.ErrSingleWorker)

	err := rule("two")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "workers must be a number"))
}
