package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hrms", cfg.Database.Name)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, "168h", cfg.JWT.RefreshExpiration)
	assert.Equal(t, 2, cfg.Approval.MaxDepth)
	assert.Equal(t, 1, cfg.Approval.MinApprovers)
	assert.False(t, cfg.Approval.RequireHRFinal)
	assert.Equal(t, "reject", cfg.Approval.EmptyChainPolicy)
}

func TestLoad_MissingRequiredFails(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "placeholder")
	os.Unsetenv("JWT_SECRET_KEY")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APPROVAL_MAX_DEPTH", "4")
	t.Setenv("APPROVAL_EMPTY_CHAIN_POLICY", "auto_approve")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 4, cfg.Approval.MaxDepth)
	assert.Equal(t, "auto_approve", cfg.Approval.EmptyChainPolicy)
}

func TestValidate_RejectsNegativeMaxDepth(t *testing.T) {
	cfg := &Config{}
	cfg.Approval.MaxDepth = -1
	cfg.Approval.EmptyChainPolicy = "reject"

	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNegativeMinApprovers(t *testing.T) {
	cfg := &Config{}
	cfg.Approval.MinApprovers = -1
	cfg.Approval.EmptyChainPolicy = "reject"

	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownEmptyChainPolicy(t *testing.T) {
	cfg := &Config{}
	cfg.Approval.EmptyChainPolicy = "escalate"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMPTY_CHAIN_POLICY")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5433
	cfg.Database.User = "hrms"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "hrmsdb"
	cfg.Database.SSLMode = "require"

	assert.Equal(t, "postgres://hrms:pw@db.internal:5433/hrmsdb?sslmode=require", cfg.DatabaseURL())
}
