package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/studysphere/studysphere-go/internal/model"
)

// MemoryUserRepository keeps users in process memory. Used when
// DATABASE_DRIVER=memory and in tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

// NewMemoryUserRepository creates a new MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new user.
func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail retrieves a user by email.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// MemoryDocumentRepository keeps documents in process memory.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

// NewMemoryDocumentRepository creates a new MemoryDocumentRepository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[string]model.Document)}
}

// Create inserts a new document.
func (r *MemoryDocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = *doc
	return nil
}

// GetByID retrieves a document owned by ownerID.
func (r *MemoryDocumentRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}

// ListByOwner returns the owner's documents, most recently updated first.
func (r *MemoryDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []model.Document
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})
	return docs, nil
}

// Update changes the title and content of a document owned by doc.OwnerID.
func (r *MemoryDocumentRepository) Update(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.docs[doc.ID]
	if !ok || existing.OwnerID != doc.OwnerID {
		return ErrDocumentNotFound
	}
	existing.Title = doc.Title
	existing.Content = doc.Content
	existing.UpdatedAt = doc.UpdatedAt
	r.docs[doc.ID] = existing
	return nil
}

// Delete removes a document owned by ownerID.
func (r *MemoryDocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}
