package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add settings table", "add_settings_table"},
		{"Add-Settings-Table", "add_settings_table"},
		{"ADD_SETTINGS_TABLE", "add_settings_table"},
		{"add__settings__table", "add_settings_table"},
		{"Add Column 123", "add_column_123"},
		{"create-invoice-sequences", "create_invoice_sequences"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	tmpDir := t.TempDir()

	mf, err := CreateMigration(tmpDir, "add settings table", "Key/value store for shop settings")
	require.NoError(t, err)

	// version is a 14-digit timestamp
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, ".up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, ".down.sql"))

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add settings table")
	assert.Contains(t, string(upContent), "Key/value store for shop settings")
	assert.Contains(t, string(upContent), "Write your UP migration SQL here")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
	assert.Contains(t, string(downContent), "Write your DOWN migration SQL here")
}

func TestCreateMigrationMakesDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nestedPath, "initial", "first migration")
	require.NoError(t, err)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	t.Run("pairs are listed once and sorted", func(t *testing.T) {
		tmpDir := t.TempDir()
		files := []string{
			"000002_create_sales.up.sql",
			"000002_create_sales.down.sql",
			"000001_create_customers.up.sql",
			"000001_create_customers.down.sql",
			"000003_create_invoices.up.sql",
			"000003_create_invoices.down.sql",
		}
		for _, f := range files {
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("-- test"), 0644))
		}

		migrations, err := ListMigrations(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"000001_create_customers",
			"000002_create_sales",
			"000003_create_invoices",
		}, migrations)
	})

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("non-migration files and directories are skipped", func(t *testing.T) {
		tmpDir := t.TempDir()
		for _, f := range []string{"000001_init.up.sql", "000001_init.down.sql", "README.md", ".gitkeep"} {
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("test"), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "archive.up.sql"), 0755))

		migrations, err := ListMigrations(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, migrations)
	})
}
