package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// validConfig returns a StackConfig that passes every rule. Tests mutate
// single fields from here to isolate violations.
func validConfig() domain.StackConfig {
	cfg := domain.NewStackConfig()
	cfg.ProjectName = "my-shop"
	cfg.DBPassword = "Xk9#mPz2Qw!La4Tc"
	cfg.AdminPassword = "Vb7$nRt3Yx@Ke5Wd"
	return cfg
}

// fieldOf extracts the Field of the first violation, requiring it to be a
// *FieldError.
func fieldOf(t *testing.T, violations []error) string {
	t.Helper()
	require.NotEmpty(t, violations)
	var fieldErr *FieldError
	require.ErrorAs(t, violations[0], &fieldErr)
	return fieldErr.Field
}

// =============================================================================
// Valid Config Tests
// =============================================================================

func TestValidate_ValidConfig(t *testing.T) {
	violations := Validate(validConfig())
	assert.Empty(t, violations)
}

func TestValidate_ValidConfigWithAllToggles(t *testing.T) {
	cfg := validConfig()
	cfg.Domain = "erp.example.com"
	cfg.EnablePostgresPort = true
	cfg.EnableRedis = true
	cfg.EnableNginx = true

	assert.Empty(t, Validate(cfg))
}

func TestValidate_DefaultPortsPass(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPPort = 8069
	cfg.ChatPort = 8072

	assert.Empty(t, Validate(cfg))
}

func TestValidate_IsPure(t *testing.T) {
	cfg := validConfig()
	cfg.Workers = 1

	first := Validate(cfg)
	second := Validate(cfg)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Error(), second[0].Error())
}

// =============================================================================
// Critical Gate Tests
// =============================================================================

func TestValidate_MissingProjectName(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectName = ""

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrProjectNameRequired)
}

func TestValidate_WhitespaceProjectName(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectName = "   "

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrProjectNameRequired)
}

func TestValidate_MissingDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = ""

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrDBPasswordRequired)
}

func TestValidate_MissingAdminPassword(t *testing.T) {
	cfg := validConfig()
	cfg.AdminPassword = "\t "

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrAdminPasswordRequired)
}

// The gate reports only the first missing critical field, in the fixed
// order project name, db password, admin password.
func TestValidate_GateShortCircuitsInOrder(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectName = ""
	cfg.DBPassword = ""
	cfg.AdminPassword = ""

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrProjectNameRequired)
	assert.Equal(t, "project_name", fieldOf(t, violations))
}

func TestValidate_GateBlocksAccumulatingChecks(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "" // critical
	cfg.HTTPPort = 80   // would fail range check

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrDBPasswordRequired)
}

// =============================================================================
// Project Name Tests
// =============================================================================

func TestValidate_ProjectNamePattern(t *testing.T) {
	tests := []struct {
		name    string
		project string
		valid   bool
	}{
		{"simple", "shop", true},
		{"hyphenated", "my-shop", true},
		{"digits", "shop2024", true},
		{"leading-digit", "2shop", true},
		{"uppercase", "MyShop", false},
		{"underscore", "my_shop", false},
		{"leading-hyphen", "-shop", false},
		{"trailing-hyphen", "shop-", false},
		{"double-hyphen", "my--shop", false},
		{"space", "my shop", false},
		{"dot", "my.shop", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ProjectName = tt.project

			violations := Validate(cfg)

			if tt.valid {
				assert.Empty(t, violations)
			} else {
				require.NotEmpty(t, violations)
				assert.ErrorIs(t, violations[0], ErrNamePattern)
			}
		})
	}
}

func TestValidate_ReservedProjectName(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectName = "docker"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrNameReserved)
	assert.Contains(t, violations[0].Error(), "reserved")
}

// =============================================================================
// Port Tests
// =============================================================================

func TestValidate_PortBelowRange(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPPort = 80

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrPortRange)
	assert.Equal(t, "http_port", fieldOf(t, violations))
}

func TestValidate_PortAboveRange(t *testing.T) {
	cfg := validConfig()
	cfg.ChatPort = 70000

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrPortRange)
	assert.Equal(t, "chat_port", fieldOf(t, violations))
}

func TestValidate_PortRangeBoundaries(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPPort = 1024
	cfg.ChatPort = 65535

	assert.Empty(t, Validate(cfg))
}

func TestValidate_EqualPorts(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPPort = 8069
	cfg.ChatPort = 8069

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrPortsEqual)
	assert.Contains(t, violations[0].Error(), "ports cannot be equal")
}

func TestValidate_WellKnownPortCollision(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"postgres", 5432},
		{"mysql", 3306},
		{"redis", 6379},
		{"docker", 2375},
		{"mongodb", 27017},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.HTTPPort = tt.port

			violations := Validate(cfg)

			require.NotEmpty(t, violations)
			assert.ErrorIs(t, violations[0], ErrPortWellKnown)
		})
	}
}

func TestValidate_BothPortsCheckedAgainstBlocklist(t *testing.T) {
	cfg := validConfig()
	cfg.ChatPort = 6379

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrPortWellKnown)
	assert.Equal(t, "chat_port", fieldOf(t, violations))
}

// =============================================================================
// Domain Tests
// =============================================================================

func TestValidate_EmptyDomainIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.Domain = ""

	assert.Empty(t, Validate(cfg))
}

func TestValidate_DomainPatterns(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		valid  bool
	}{
		{"fqdn", "erp.example.com", true},
		{"subdomain", "odoo.internal.example.co.uk", true},
		{"single-label", "intranet", true},
		{"hyphenated", "my-erp.example.com", true},
		{"trailing-dot", "example.com.", false},
		{"leading-hyphen-label", "-bad.example.com", false},
		{"underscore", "my_erp.example.com", false},
		{"empty-label", "erp..example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Domain = tt.domain

			violations := Validate(cfg)

			if tt.valid {
				assert.Empty(t, violations)
			} else {
				require.NotEmpty(t, violations)
				assert.ErrorIs(t, violations[0], ErrDomainPattern)
			}
		})
	}
}

func TestValidate_DomainLocalhostRejected(t *testing.T) {
	cfg := validConfig()
	cfg.Domain = "localhost"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrDomainLiteral)
}

func TestValidate_DomainIPLiteralRejected(t *testing.T) {
	for _, ip := range []string{"192.168.1.10", "10.0.0.1", "::1"} {
		cfg := validConfig()
		cfg.Domain = ip

		violations := Validate(cfg)

		require.NotEmpty(t, violations, "ip %s", ip)
		assert.ErrorIs(t, violations[0], ErrDomainLiteral, "ip %s", ip)
	}
}

// =============================================================================
// Identifier Tests
// =============================================================================

func TestValidate_EmptyDBName(t *testing.T) {
	cfg := validConfig()
	cfg.DBName = ""

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrIdentifierRequired)
	assert.Equal(t, "db_name", fieldOf(t, violations))
}

func TestValidate_EmptyDBUser(t *testing.T) {
	cfg := validConfig()
	cfg.DBUser = " "

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrIdentifierRequired)
	assert.Equal(t, "db_user", fieldOf(t, violations))
}

// =============================================================================
// Secret Strength Tests
// =============================================================================

func TestValidate_ShortDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "short1"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrSecretTooShort)
	assert.Contains(t, violations[0].Error(), "at least 12 characters")
}

func TestValidate_PasswordWithWhitespace(t *testing.T) {
	cfg := validConfig()
	cfg.AdminPassword = "has a space in here"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrSecretWhitespace)
	assert.Equal(t, "admin_password", fieldOf(t, violations))
}

func TestValidate_AllDigitPassword(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "123456789012345"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrSecretAllDigits)
}

// A short all-digit password trips both rules at once; neither suppresses
// the other.
func TestValidate_SecretViolationsAccumulate(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "12345"

	violations := Validate(cfg)

	require.Len(t, violations, 2)
	assert.ErrorIs(t, violations[0], ErrSecretTooShort)
	assert.ErrorIs(t, violations[1], ErrSecretAllDigits)
}

func TestValidate_ExactMinimumLengthPasses(t *testing.T) {
	cfg := validConfig()
	cfg.DBPassword = "abcDEF123!@#" // exactly 12

	assert.Empty(t, Validate(cfg))
}

// =============================================================================
// Worker Count Tests
// =============================================================================

func TestValidate_WorkerCount(t *testing.T) {
	tests := []struct {
		workers int
		valid   bool
	}{
		{0, true},
		{1, false},
		{2, true},
		{4, true},
		{16, true},
		{-1, false},
	}
	for _, tt := range tests {
		cfg := validConfig()
		cfg.Workers = tt.workers

		violations := Validate(cfg)

		if tt.valid {
			assert.Empty(t, violations, "workers=%d", tt.workers)
		} else {
			assert.NotEmpty(t, violations, "workers=%d", tt.workers)
		}
	}
}

func TestValidate_SingleWorkerRejectedByPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Workers = 1

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrSingleWorker)
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Workers = -3

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrNegativeWorkers)
}

// =============================================================================
// Cron / Memory / Log Level Tests
// =============================================================================

func TestValidate_NegativeCronThreads(t *testing.T) {
	cfg := validConfig()
	cfg.CronThreads = -1

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrNegativeCron)
}

func TestValidate_ZeroCronThreadsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.CronThreads = 0

	assert.Empty(t, Validate(cfg))
}

func TestValidate_MemoryBelowMinimum(t *testing.T) {
	cfg := validConfig()
	cfg.MemoryLimitGB = 0

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrMemoryTooLow)
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "verbose"

	violations := Validate(cfg)

	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], ErrUnknownLogLevel)
}

// =============================================================================
// Accumulation Tests
// =============================================================================

// Once the gate passes, independent violations on different fields are all
// reported together.
func TestValidate_AccumulatesAcrossFields(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectName = "My Shop" // pattern
	cfg.HTTPPort = 80           // range
	cfg.Workers = 1             // policy
	cfg.MemoryLimitGB = 0       // minimum

	violations := Validate(cfg)

	assert.Len(t, violations, 4)
	assertContainsSentinel(t, violations, ErrNamePattern)
	assertContainsSentinel(t, violations, ErrPortRange)
	assertContainsSentinel(t, violations, ErrSingleWorker)
	assertContainsSentinel(t, violations, ErrMemoryTooLow)
}

func assertContainsSentinel(t *testing.T, violations []error, sentinel error) {
	t.Helper()
	for _, v := range violations {
		if errors.Is(v, sentinel) {
			return
		}
	}
	t.Errorf("violations %v do not contain %v", violations, sentinel)
}
