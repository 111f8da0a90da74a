package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andy/invoicedesk/internal/db"
	"github.com/andy/invoicedesk/internal/domain"
)

// DraftRepo is a SQLite implementation of DraftRepository
type DraftRepo struct {
	db *db.DB
}

// NewDraftRepo creates a new DraftRepo
func NewDraftRepo(database *db.DB) *DraftRepo {
	return &DraftRepo{db: database}
}

// Save inserts the draft, or replaces its contents if the ID already
// exists. created_at is kept from the first save.
func (r *DraftRepo) Save(ctx context.Context, draft *domain.Draft) error {
	if draft.ID == "" {
		return errors.New("draft ID is required")
	}

	record, err := json.Marshal(draft.Record)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	now := time.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	query := `
		INSERT INTO drafts (id, invoice_number, client_name, total, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			invoice_number = excluded.invoice_number,
			client_name = excluded.client_name,
			total = excluded.total,
			record = excluded.record,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		draft.ID,
		draft.Number,
		draft.ClientName,
		draft.Total.String(),
		string(record),
		formatTime(draft.CreatedAt),
		formatTime(draft.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// GetByID retrieves a draft by ID
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `
		SELECT id, invoice_number, client_name, total, record, created_at, updated_at
		FROM drafts
		WHERE id = ?
	`
	return r.getOne(ctx, query, id)
}

// GetByNumber retrieves the most recently updated draft with the invoice number
func (r *DraftRepo) GetByNumber(ctx context.Context, number string) (*domain.Draft, error) {
	query := `
		SELECT id, invoice_number, client_name, total, record, created_at, updated_at
		FROM drafts
		WHERE invoice_number = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, number)
}

// List returns every draft, newest first
func (r *DraftRepo) List(ctx context.Context) ([]*domain.Draft, error) {
	query := `
		SELECT id, invoice_number, client_name, total, record, created_at, updated_at
		FROM drafts
		ORDER BY updated_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]*domain.Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drafts: %w", err)
	}

	return drafts, nil
}

// Delete removes a draft
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *DraftRepo) getOne(ctx context.Context, query string, arg any) (*domain.Draft, error) {
	draft, err := scanDraft(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("draft %v: %w", arg, ErrNotFound)
		}
		return nil, err
	}
	return draft, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(s scanner) (*domain.Draft, error) {
	draft := &domain.Draft{}
	var total, record, createdAt, updatedAt string

	err := s.Scan(
		&draft.ID,
		&draft.Number,
		&draft.ClientName,
		&total,
		&record,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan draft: %w", err)
	}

	if draft.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("failed to parse total: %w", err)
	}
	if err := json.Unmarshal([]byte(record), &draft.Record); err != nil {
		return nil, fmt.Errorf("failed to decode draft record: %w", err)
	}
	if draft.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if draft.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return draft, nil
}
