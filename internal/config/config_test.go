package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"OID_PREFIX", "OID_OUTPUT", "OID_LOG_LEVEL", "OID_STORE_DRIVER", "OID_STORE_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Prefix)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, "127.0.0.1:3306", cfg.Store.MySQL.Addr)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, "oid.yaml", `
prefix: FLT
output: json
log:
  level: debug
  pretty: true
store:
  driver: mysql
  mysql:
    addr: db:3306
    user: oid
    password: secret
    database: ids
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flt", cfg.Prefix)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, MySQLConfig{Addr: "db:3306", User: "oid", Password: "secret", Database: "ids"}, cfg.Store.MySQL)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	path := writeFile(t, "oid.yaml", "output: json\n")
	t.Setenv("OID_OUTPUT", "text")
	t.Setenv("OID_STORE_PATH", "/tmp/records.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, "/tmp/records.json", cfg.Store.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad prefix", "prefix: x\n", "prefix"},
		{"bad prefix char", "prefix: a_b\n", "prefix"},
		{"bad output", "output: xml\n", "output"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad driver", "store:\n  driver: redis\n", "driver"},
		{"empty path", "store:\n  driver: file\n  path: \"\"\n", "path"},
		{"mysql without database", "store:\n  driver: mysql\n  mysql:\n    database: \"\"\n", "database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeFile(t, "oid.yaml", tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field+": ")
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Prefix: "tst",
		Output: OutputText,
		Store:  StoreConfig{Driver: DriverFile, Path: "records.json"},
	}
	assert.NoError(t, cfg.Validate())

	// MySQL settings are ignored for the file driver.
	cfg.Store.MySQL = MySQLConfig{}
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = DriverMySQL
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr: cannot be blank")
	assert.Contains(t, err.Error(), "database: cannot be blank")
	assert.NotContains(t, err.Error(), "Database")
}
