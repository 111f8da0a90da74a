package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/export"
)

type stubRenderer struct {
	ext  string
	err  error
	seen *export.Document
}

func (r *stubRenderer) Render(ctx context.Context, doc *export.Document) ([]byte, error) {
	r.seen = doc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("rendered " + doc.Invoice.Number), nil
}

func (r *stubRenderer) Extension() string { return r.ext }

func newTestExporter(t *testing.T, e *Editor, pdf export.Renderer) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	x := NewExporter(e, map[ExportKind]export.Renderer{
		ExportPDF:   pdf,
		ExportPrint: &stubRenderer{ext: "txt"},
	}, ExporterConfig{OutDir: dir, Company: "Andy Studio", Now: fixedNow}, nil)
	return x, dir
}

func TestExporter_ExportWritesFileAndRestoresMode(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	require.NoError(t, e.SetNumber("INV-9"))
	x, dir := newTestExporter(t, e, &stubRenderer{ext: "pdf"})

	path, err := x.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Invoice_INV-9_2025-08-22.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rendered INV-9", string(data))
	assert.Equal(t, domain.ModeEdit, e.Mode())
	assert.False(t, x.Busy())
}

func TestExporter_FailureStillRestoresMode(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	boom := errors.New("rasterizer missing")
	x, _ := newTestExporter(t, e, &stubRenderer{ext: "pdf", err: boom})

	_, err := x.Export(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.ModeEdit, e.Mode())
	assert.False(t, x.Busy())
}

func TestExporter_RejectsConcurrentExport(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	x, _ := newTestExporter(t, e, &stubRenderer{ext: "pdf"})

	job, err := x.Begin(ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeView, e.Mode(), "export renders from view mode")

	_, err = x.Begin(ExportPrint)
	assert.ErrorIs(t, err, ErrExportInProgress)
	_, err = x.Print(context.Background())
	assert.ErrorIs(t, err, ErrExportInProgress)

	x.Finish(job)
	assert.Equal(t, domain.ModeEdit, e.Mode())

	_, err = x.Print(context.Background())
	assert.NoError(t, err)
}

func TestExporter_SnapshotIsIsolated(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	require.NoError(t, e.SetItemRate(firstRowID(e), "100"))
	r := &stubRenderer{ext: "pdf"}
	x, _ := newTestExporter(t, e, r)

	job, err := x.Begin(ExportPDF)
	require.NoError(t, err)
	x.Finish(job)

	// editing after the snapshot must not leak into the running job
	require.NoError(t, e.SetItemRate(firstRowID(e), "999"))
	_, err = job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "100", r.seen.Invoice.Items[0].Rate.String())
	assert.Equal(t, "Andy Studio", r.seen.Company)
	assert.Equal(t, 15, r.seen.ItemsPerPage)
}

func TestExporter_UnknownKind(t *testing.T) {
	e := newTestEditor(t, domain.ModeEdit)
	x, _ := newTestExporter(t, e, &stubRenderer{ext: "pdf"})

	_, err := x.Begin(ExportKind("png"))
	assert.Error(t, err)
	assert.False(t, x.Busy())
	assert.Equal(t, domain.ModeEdit, e.Mode())
}
