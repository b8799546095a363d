package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysphere/studysphere-go/internal/model"
	"github.com/studysphere/studysphere-go/internal/repository"
)

func newTestDocumentService() (*DocumentService, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewDocumentService(repository.NewMemoryDocumentRepository(), clock.Now), clock
}

func TestCreateAndListScenario(t *testing.T) {
	svc, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "owner-a", model.DocumentRequest{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, "owner-a", doc.OwnerID)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.False(t, doc.UpdatedAt.IsZero())
	assert.Equal(t, "T", doc.Title)
	assert.Equal(t, "C", doc.Content)

	docs, err := svc.List(ctx, "owner-a")
	require.NoError(t, err)
	assert.Contains(t, docs, doc)

	others, err := svc.List(ctx, "owner-b")
	require.NoError(t, err)
	assert.NotNil(t, others)
	assert.Empty(t, others)
}

func TestListNeverReturnsForeignDocuments(t *testing.T) {
	svc, _ := newTestDocumentService()
	ctx := context.Background()
	owners := []string{"a", "b", "c", "d"}

	for i := 0; i < 40; i++ {
		_, err := svc.Create(ctx, owners[i%len(owners)], model.DocumentRequest{Title: fmt.Sprintf("doc %d", i)})
		require.NoError(t, err)
	}

	for _, owner := range owners {
		docs, err := svc.List(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, docs, 10)
		for _, d := range docs {
			assert.Equal(t, owner, d.OwnerID)
		}
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc, clock := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "owner-a", model.DocumentRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	updated, err := svc.Update(ctx, "owner-a", doc.ID, model.DocumentRequest{Title: "T2", Content: "C2"})
	require.NoError(t, err)

	assert.Equal(t, doc.ID, updated.ID)
	assert.Equal(t, "owner-a", updated.OwnerID)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C2", updated.Content)
	assert.Equal(t, doc.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(doc.UpdatedAt))

	got, err := svc.Get(ctx, "owner-a", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	svc, _ := newTestDocumentService()
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "not-a-uuid", ""} {
		_, err := svc.Update(ctx, "owner-a", id, model.DocumentRequest{Title: "T"})
		assert.ErrorIs(t, err, ErrDocumentNotFound, "update %q", id)

		err = svc.Delete(ctx, "owner-a", id)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "delete %q", id)
	}
}

func TestUpdateAndDeleteByNonOwner(t *testing.T) {
	svc, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "owner-a", model.DocumentRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner-b", doc.ID, model.DocumentRequest{Title: "hijacked"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	err = svc.Delete(ctx, "owner-b", doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	got, err := svc.Get(ctx, "owner-a", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDeleteRemovesDocument(t *testing.T) {
	svc, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "owner-a", model.DocumentRequest{Title: "T"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "owner-a", doc.ID))

	_, err = svc.Get(ctx, "owner-a", doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "owner-a", doc.ID), ErrDocumentNotFound)
}
