package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/export"
)

var ErrExportInProgress = errors.New("an export is already running")

// ExportKind selects the output format
type ExportKind string

const (
	ExportPDF   ExportKind = "pdf"
	ExportPrint ExportKind = "print"
)

// ExporterConfig holds output settings
type ExporterConfig struct {
	OutDir  string
	Company string
	Now     func() time.Time
}

// Exporter runs one export at a time. Begin and Finish must be called from
// the same goroutine that drives the Editor; Run may happen anywhere.
type Exporter struct {
	editor    *Editor
	renderers map[ExportKind]export.Renderer
	cfg       ExporterConfig
	logger    *zap.Logger
	busy      atomic.Bool
}

// ExportJob is an export in flight
type ExportJob struct {
	Kind     ExportKind
	Path     string
	doc      *export.Document
	renderer export.Renderer
	prevMode domain.Mode
	logger   *zap.Logger
}

// NewExporter creates a new exporter
func NewExporter(editor *Editor, renderers map[ExportKind]export.Renderer, cfg ExporterConfig, logger *zap.Logger) *Exporter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{editor: editor, renderers: renderers, cfg: cfg, logger: logger}
}

// Reconfigure replaces the output settings
func (x *Exporter) Reconfigure(cfg ExporterConfig) {
	if cfg.Now == nil {
		cfg.Now = x.cfg.Now
	}
	x.cfg = cfg
}

// Busy reports whether an export is in flight
func (x *Exporter) Busy() bool {
	return x.busy.Load()
}

// Begin switches the editor to view mode and snapshots the document. The
// caller must pass the job to Finish whatever happens to it.
func (x *Exporter) Begin(kind ExportKind) (*ExportJob, error) {
	if !x.busy.CompareAndSwap(false, true) {
		x.logger.Warn("export rejected", zap.String("kind", string(kind)))
		return nil, ErrExportInProgress
	}

	renderer, ok := x.renderers[kind]
	if !ok {
		x.busy.Store(false)
		return nil, fmt.Errorf("no renderer for %q", kind)
	}

	prev := x.editor.Mode()
	x.editor.SetMode(domain.ModeView)

	cfg := x.editor.Config()
	doc := &export.Document{
		Company:      x.cfg.Company,
		Invoice:      x.editor.Invoice(),
		Totals:       x.editor.Totals(),
		ItemsPerPage: cfg.ItemsPerPage,
		Formatter:    cfg.Formatter,
		Defaults:     x.editor.ViewDefaults(),
	}
	name := export.Filename(doc.Invoice.Number, cfg.DefaultNumber, x.cfg.Now(), renderer.Extension())

	return &ExportJob{
		Kind:     kind,
		Path:     filepath.Join(x.cfg.OutDir, name),
		doc:      doc,
		renderer: renderer,
		prevMode: prev,
		logger:   x.logger,
	}, nil
}

// Run renders the snapshot and writes it to disk
func (j *ExportJob) Run(ctx context.Context) (string, error) {
	data, err := j.renderer.Render(ctx, j.doc)
	if err != nil {
		j.logger.Error("render failed", zap.String("kind", string(j.Kind)), zap.Error(err))
		return "", fmt.Errorf("failed to render %s: %w", j.Kind, err)
	}

	if err := os.MkdirAll(filepath.Dir(j.Path), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(j.Path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", j.Path, err)
	}

	j.logger.Info("document exported",
		zap.String("kind", string(j.Kind)),
		zap.String("path", j.Path),
		zap.Int("bytes", len(data)),
	)
	return j.Path, nil
}

// Finish restores the editor mode from before Begin and releases the guard
func (x *Exporter) Finish(job *ExportJob) {
	if job == nil {
		return
	}
	x.editor.SetMode(job.prevMode)
	x.busy.Store(false)
}

// Export writes a PDF and returns its path
func (x *Exporter) Export(ctx context.Context) (string, error) {
	return x.run(ctx, ExportPDF)
}

// Print writes a plain text copy for printing and returns its path
func (x *Exporter) Print(ctx context.Context) (string, error) {
	return x.run(ctx, ExportPrint)
}

func (x *Exporter) run(ctx context.Context, kind ExportKind) (string, error) {
	job, err := x.Begin(kind)
	if err != nil {
		return "", err
	}
	defer x.Finish(job)
	return job.Run(ctx)
}
