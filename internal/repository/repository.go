package repository

import (
	"context"
	"errors"

	"github.com/andy/invoicedesk/internal/domain"
)

var ErrNotFound = errors.New("not found")

// DraftRepository manages saved invoice drafts
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.Draft) error // Inserts or replaces by ID
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	GetByNumber(ctx context.Context, number string) (*domain.Draft, error) // Most recently updated match
	List(ctx context.Context) ([]*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}
