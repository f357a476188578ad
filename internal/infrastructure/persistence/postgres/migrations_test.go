package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.up.sql", "001_a.up.sql", "001_a.down.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.up.sql"), 0o700))

	migrations, err := listMigrations(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.up.sql", "002_b.up.sql"}, migrations)
}

func TestListMigrations_ShippedJournalSchema(t *testing.T) {
	migrations, err := listMigrations(filepath.Join("..", "..", "..", "..", "migrations"))

	require.NoError(t, err)
	assert.Contains(t, migrations, "001_create_checkout_journal.up.sql")
}

func TestJournalSchema_MoneyColumnsAreUnbounded(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_create_checkout_journal.up.sql"))
	require.NoError(t, err)

	// Tender and discount are free-form decimals; a scale or precision limit
	// would reject the journal row and orphan its lines.
	assert.NotRegexp(t, `(?i)NUMERIC\s*\(`, string(schema))
	for _, column := range []string{"total", "tendered", "unit_price", "discount"} {
		assert.Regexp(t, `(?m)^\s*`+column+`\s+NUMERIC NOT NULL`, string(schema))
	}
}

func TestListMigrations_MissingDir(t *testing.T) {
	_, err := listMigrations(filepath.Join(t.TempDir(), "absent"))

	assert.ErrorContains(t, err, "failed to read migrations directory")
}
