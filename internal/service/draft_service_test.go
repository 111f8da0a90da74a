package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/repository"
)

// mock implementation
type mockDraftRepo struct {
	drafts map[string]*domain.Draft
	saves  int
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{drafts: make(map[string]*domain.Draft)}
}

func (m *mockDraftRepo) Save(ctx context.Context, draft *domain.Draft) error {
	m.saves++
	c := *draft
	m.drafts[draft.ID] = &c
	return nil
}

func (m *mockDraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	if d, ok := m.drafts[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("draft %s: %w", id, repository.ErrNotFound)
}

func (m *mockDraftRepo) GetByNumber(ctx context.Context, number string) (*domain.Draft, error) {
	for _, d := range m.drafts {
		if d.Number == number {
			return d, nil
		}
	}
	return nil, fmt.Errorf("draft %s: %w", number, repository.ErrNotFound)
}

func (m *mockDraftRepo) List(ctx context.Context) ([]*domain.Draft, error) {
	out := make([]*domain.Draft, 0, len(m.drafts))
	for _, d := range m.drafts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockDraftRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.drafts[id]; !ok {
		return fmt.Errorf("draft %s: %w", id, repository.ErrNotFound)
	}
	delete(m.drafts, id)
	return nil
}

func TestDraftService_SaveThenUpdate(t *testing.T) {
	repo := newMockDraftRepo()
	svc := NewDraftService(repo, nil)
	ctx := context.Background()
	e := newTestEditor(t, domain.ModeEdit)
	require.NoError(t, e.SetClientName("Acme"))

	first, err := svc.Save(ctx, e)
	require.NoError(t, err)
	assert.Len(t, first.ID, 36)
	assert.Equal(t, first.ID, e.DraftID())

	require.NoError(t, e.SetClientName("Acme Ltd"))
	second, err := svc.Save(ctx, e)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "saving again updates the same draft")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Len(t, repo.drafts, 1)
	assert.Equal(t, "Acme Ltd", repo.drafts[first.ID].ClientName)
}

func TestDraftService_Open(t *testing.T) {
	repo := newMockDraftRepo()
	svc := NewDraftService(repo, nil)
	ctx := context.Background()

	src := newTestEditor(t, domain.ModeEdit)
	require.NoError(t, src.SetNumber("INV-77"))
	require.NoError(t, src.SetItemRate(firstRowID(src), "40"))
	saved, err := svc.Save(ctx, src)
	require.NoError(t, err)

	dst := newTestEditor(t, domain.ModeEdit)
	require.NoError(t, dst.SetClientName("Leftover"))
	_, err = dst.AddRow()
	require.NoError(t, err)

	opened, err := svc.Open(ctx, "INV-77", dst)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, opened.ID)
	assert.Equal(t, saved.ID, dst.DraftID())
	assert.Equal(t, "INV-77", dst.Invoice().Number)
	assert.Equal(t, "", dst.Invoice().Client.Name, "opening starts from a fresh document")
	assert.Len(t, dst.Invoice().Items, 1)
	assert.True(t, src.Totals().Equal(dst.Totals()))
}

func TestDraftService_SaveAndOpenClearDirty(t *testing.T) {
	repo := newMockDraftRepo()
	svc := NewDraftService(repo, nil)
	ctx := context.Background()

	e := newTestEditor(t, domain.ModeEdit)
	assert.False(t, e.Dirty(), "a fresh document has nothing to lose")

	require.NoError(t, e.SetNumber("INV-9"))
	assert.True(t, e.Dirty())

	_, err := svc.Save(ctx, e)
	require.NoError(t, err)
	assert.False(t, e.Dirty())

	_, err = e.AddRow()
	require.NoError(t, err)
	assert.True(t, e.Dirty())

	_, err = svc.Open(ctx, "INV-9", e)
	require.NoError(t, err)
	assert.False(t, e.Dirty())

	e.SetMode(domain.ModeView)
	assert.ErrorIs(t, e.SetClientName("x"), ErrReadOnly)
	assert.False(t, e.Dirty(), "rejected edits change nothing")

	e.Reset()
	assert.False(t, e.Dirty())
}

func TestDraftService_Resolve(t *testing.T) {
	repo := newMockDraftRepo()
	repo.drafts["abc11111"] = &domain.Draft{ID: "abc11111", Number: "INV-1"}
	repo.drafts["abc22222"] = &domain.Draft{ID: "abc22222", Number: "INV-2"}
	svc := NewDraftService(repo, nil)
	ctx := context.Background()

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{"abc11111", "abc11111", nil},
		{"INV-2", "abc22222", nil},
		{"abc2", "abc22222", nil},
		{"abc", "", ErrAmbiguousDraft},
		{"zzz", "", ErrDraftNotFound},
		{"  ", "", ErrDraftNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			d, err := svc.Resolve(ctx, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, d.ID)
		})
	}
}

func TestDraftService_Delete(t *testing.T) {
	repo := newMockDraftRepo()
	repo.drafts["abc11111"] = &domain.Draft{ID: "abc11111", Number: "INV-1"}
	svc := NewDraftService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), "INV-1"))
	assert.Empty(t, repo.drafts)
	assert.ErrorIs(t, svc.Delete(context.Background(), "INV-1"), ErrDraftNotFound)
}
