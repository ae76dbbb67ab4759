package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("username", "someone@example.com")
	t.Setenv("app_password", "hunter2")
	t.Setenv("notes_db_id", "db-123")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "satinder-bank-emails", cfg.Bucket)
	assert.Equal(t, "8698602278", cfg.SelfTransferID)
	assert.NotEmpty(t, cfg.WorkDir)

	now := time.Now()
	want := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	assert.Equal(t, want, cfg.PeriodStart)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("username", "")
	t.Setenv("app_password", "")
	t.Setenv("notes_db_id", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "app_password")
	assert.Contains(t, err.Error(), "notes_db_id")
}

func TestLoad_ExplicitPeriodStart(t *testing.T) {
	setRequired(t)
	t.Setenv("period_start", "2023-05-01")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.May, 1, 0, 0, 0, 0, time.Local), cfg.PeriodStart)
}

func TestLoad_BadPeriodStart(t *testing.T) {
	setRequired(t)
	t.Setenv("period_start", "01-05-2023")

	_, err := Load()
	require.Error(t, err)
}
