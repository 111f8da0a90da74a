package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/repository"
)

var (
	ErrDraftNotFound  = errors.New("draft not found")
	ErrAmbiguousDraft = errors.New("draft reference matches more than one draft")
)

// DraftService saves and reopens editor documents
type DraftService interface {
	// Save stores the editor's document, creating a new draft the first time
	Save(ctx context.Context, editor *Editor) (*domain.Draft, error)

	// Open replaces the editor's document with a saved draft
	Open(ctx context.Context, ref string, editor *Editor) (*domain.Draft, error)

	// List returns every saved draft, newest first
	List(ctx context.Context) ([]*domain.Draft, error)

	// Delete removes a saved draft
	Delete(ctx context.Context, ref string) error

	// Resolve finds a draft by ID, unique ID prefix, or invoice number
	Resolve(ctx context.Context, ref string) (*domain.Draft, error)
}

type draftService struct {
	repo   repository.DraftRepository
	logger *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(repo repository.DraftRepository, logger *zap.Logger) DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &draftService{repo: repo, logger: logger}
}

func (s *draftService) Save(ctx context.Context, editor *Editor) (*domain.Draft, error) {
	id := editor.DraftID()
	if id == "" {
		id = uuid.NewString()
	}

	draft := domain.NewDraft(id, editor.Invoice(), editor.Totals())
	if existing, err := s.repo.GetByID(ctx, id); err == nil {
		draft.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Save(ctx, draft); err != nil {
		return nil, err
	}
	editor.SetDraftID(id)
	editor.MarkSaved()

	s.logger.Info("draft saved", zap.String("id", id), zap.String("number", draft.Number))
	return draft, nil
}

func (s *draftService) Open(ctx context.Context, ref string, editor *Editor) (*domain.Draft, error) {
	draft, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	editor.Reset()
	loadErr := editor.Load(draft.Record)
	editor.SetDraftID(draft.ID)
	editor.MarkSaved()

	s.logger.Info("draft opened", zap.String("id", draft.ID))
	if loadErr != nil {
		return draft, fmt.Errorf("draft %s loaded with errors: %w", ShortID(draft.ID), loadErr)
	}
	return draft, nil
}

func (s *draftService) List(ctx context.Context) ([]*domain.Draft, error) {
	return s.repo.List(ctx)
}

func (s *draftService) Delete(ctx context.Context, ref string) error {
	draft, err := s.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, draft.ID); err != nil {
		return err
	}

	s.logger.Info("draft deleted", zap.String("id", draft.ID))
	return nil
}

func (s *draftService) Resolve(ctx context.Context, ref string) (*domain.Draft, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrDraftNotFound)
	}

	draft, err := s.repo.GetByID(ctx, ref)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	draft, err = s.repo.GetByNumber(ctx, ref)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	drafts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Draft
	for _, d := range drafts {
		if strings.HasPrefix(d.ID, ref) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousDraft, ref)
	}
}

// ShortID returns the first block of a draft UUID for display
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
