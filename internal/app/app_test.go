package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/crypto"
	"github.com/andy/invoicedesk/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "drafts.db")
	cfg.Invoice.OutputDir = filepath.Join(dir, "out")
	cfg.Log.Path = "discard"
	return cfg
}

func TestEditorConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Invoice.CurrencySymbol = "$"
	cfg.Invoice.CurrencyCode = "USD"
	cfg.Invoice.StartInEditMode = false
	cfg.Invoice.DefaultTaxRate = 12.5

	ec := EditorConfig(cfg)

	assert.Equal(t, domain.ModeView, ec.StartMode)
	assert.Equal(t, "12.5", ec.DefaultTaxRate.String())
	assert.Equal(t, "$", ec.Formatter.Symbol)
	assert.Equal(t, 15, ec.ItemsPerPage)
}

func TestNewWithConfig_EndToEnd(t *testing.T) {
	t.Setenv(crypto.EnvKey, "test-key")
	cfg := testConfig(t)

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	require.Equal(t, domain.ModeEdit, a.Editor.Mode())
	require.NoError(t, a.Editor.SetNumber("INV-55"))
	require.NoError(t, a.Editor.SetItemRate(a.Editor.Invoice().Items[0].ID, "10"))

	draft, err := a.DraftService.Save(ctx, a.Editor)
	require.NoError(t, err)

	drafts, err := a.DraftService.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	path, err := a.Exporter.Print(ctx)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, domain.ModeEdit, a.Editor.Mode())
}

func TestApplyConfig(t *testing.T) {
	t.Setenv(crypto.EnvKey, "test-key")
	cfg := testConfig(t)

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	for i := 0; i < 5; i++ {
		_, err := a.Editor.AddRow()
		require.NoError(t, err)
	}
	require.Len(t, a.Editor.Pages(), 1)

	a.Config.Invoice.ItemsPerPage = 2
	a.ApplyConfig()

	assert.Len(t, a.Editor.Pages(), 3)
	assert.Len(t, a.Editor.Invoice().Items, 6)
}
