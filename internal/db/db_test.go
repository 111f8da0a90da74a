package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "nested", "drafts.db"), "it's secret")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.RunMigrations())

	v, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestQuoteKey(t *testing.T) {
	assert.Equal(t, "'plain'", quoteKey("plain"))
	assert.Equal(t, "'it''s'", quoteKey("it's"))
}
