package workorder

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubRepo embeds the interface so only the methods under test exist.
type stubRepo struct {
	Repository
	doc     *WorkOrder
	updated bool
}

func (r *stubRepo) GetForUpdate(_ context.Context, docID id.ID) (*WorkOrder, error) {
	if r.doc == nil || r.doc.ID != docID {
		return nil, apperror.NewNotFound("work order", docID.String())
	}
	return r.doc, nil
}

func (r *stubRepo) Update(_ context.Context, _ *WorkOrder) error {
	r.updated = true
	return nil
}

type stubFileStore struct {
	paths []string
}

func (s *stubFileStore) Save(_ context.Context, filePath string, _ io.Reader) (string, error) {
	s.paths = append(s.paths, filePath)
	return "https://files.local/" + filePath, nil
}

func TestAttachEvidence_RecordsURLOnOrder(t *testing.T) {
	wo := newTestOrder()
	wo.Number = "OT-000123"

	repo := &stubRepo{doc: wo}
	store := &stubFileStore{}

	svc := NewService(repo, nil, nil, nil, stubTxManager{})
	svc.SetFileStore(store)

	url, err := svc.AttachEvidence(context.Background(), wo.ID, "recepcion.jpg", bytes.NewBufferString("img"))
	require.NoError(t, err)

	assert.Equal(t, "https://files.local/work-orders/OT-000123/recepcion.jpg", url)
	assert.Equal(t, []string{"work-orders/OT-000123/recepcion.jpg"}, store.paths)
	assert.Equal(t, []any{url}, wo.Attributes["evidencia"])
	assert.True(t, repo.updated)
}

func TestAttachEvidence_WithoutStoreFails(t *testing.T) {
	wo := newTestOrder()
	repo := &stubRepo{doc: wo}

	svc := NewService(repo, nil, nil, nil, stubTxManager{})

	_, err := svc.AttachEvidence(context.Background(), wo.ID, "recepcion.jpg", bytes.NewBufferString("img"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "FILE_STORAGE_NOT_CONFIGURED", appErr.Code)

	assert.False(t, repo.updated)
}

func TestAttachEvidence_RequiresFilename(t *testing.T) {
	wo := newTestOrder()

	svc := NewService(&stubRepo{doc: wo}, nil, nil, nil, stubTxManager{})
	svc.SetFileStore(&stubFileStore{})

	_, err := svc.AttachEvidence(context.Background(), wo.ID, "", bytes.NewBufferString("img"))
	require.Error(t, err)
}
