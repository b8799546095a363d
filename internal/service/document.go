package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studysphere/studysphere-go/internal/model"
	"github.com/studysphere/studysphere-go/internal/repository"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is the owner-scoped document persistence the service needs.
type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, ownerID, id string) (*model.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, ownerID, id string) error
}

// DocumentService handles document business logic for an authenticated owner.
type DocumentService struct {
	repo DocumentStore
	now  func() time.Time
}

// NewDocumentService creates a new DocumentService. A nil clock means time.Now.
func NewDocumentService(repo DocumentStore, now func() time.Time) *DocumentService {
	if now == nil {
		now = time.Now
	}
	return &DocumentService{repo: repo, now: now}
}

// Create stores a new document owned by ownerID.
func (s *DocumentService) Create(ctx context.Context, ownerID string, req model.DocumentRequest) (model.Document, error) {
	now := s.now().UTC()
	doc := model.Document{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, &doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// List returns the owner's documents. Never nil.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]model.Document, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}

// Get returns a single document owned by ownerID.
func (s *DocumentService) Get(ctx context.Context, ownerID, id string) (model.Document, error) {
	if !validID(id) {
		return model.Document{}, ErrDocumentNotFound
	}
	doc, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.Document{}, translateDocumentErr(err)
	}
	return *doc, nil
}

// Update replaces title and content of a document owned by ownerID.
// Documents of other owners are reported as not found.
func (s *DocumentService) Update(ctx context.Context, ownerID, id string, req model.DocumentRequest) (model.Document, error) {
	existing, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Document{}, err
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, &existing); err != nil {
		return model.Document{}, translateDocumentErr(err)
	}
	return existing, nil
}

// Delete permanently removes a document owned by ownerID.
func (s *DocumentService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return ErrDocumentNotFound
	}
	return translateDocumentErr(s.repo.Delete(ctx, ownerID, id))
}

func translateDocumentErr(err error) error {
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return ErrDocumentNotFound
	}
	return err
}

// validID filters ids that could never name a stored document, so a
// malformed id is a 404 rather than a driver cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
