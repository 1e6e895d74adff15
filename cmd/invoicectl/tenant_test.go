package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantCreate_ConSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "ctl.db"))
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("JWT_SECRET", "secreto-ctl")

	run := func(args ...string) (string, error) {
		cmd := tenantCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("create", "--company", "Acme", "--email", "admin@acme.io", "--password", "12345678")
	require.NoError(t, err)
	assert.Contains(t, out, "empresa: Acme")
	assert.Contains(t, out, "admin:   admin@acme.io")

	_, err = run("create", "--company", "Otra", "--email", "ADMIN@acme.io", "--password", "12345678")
	assert.Error(t, err, "el email del admin es único en todo el sistema")

	_, err = run("create", "--company", "Sin password", "--email", "x@acme.io")
	assert.Error(t, err)
}

func TestMigrateDown_PasosInvalidos(t *testing.T) {
	cmd := migrateCmd()
	cmd.SetArgs([]string{"down", "cero"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
