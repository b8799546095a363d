package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studysphere/studysphere-go/internal/middleware"
	"github.com/studysphere/studysphere-go/internal/model"
	"github.com/studysphere/studysphere-go/internal/service"
)

const documentBodyLimit = 10 << 20 // 10MB

// Documents is the owner-scoped document API the handler calls.
type Documents interface {
	Create(ctx context.Context, ownerID string, req model.DocumentRequest) (model.Document, error)
	List(ctx context.Context, ownerID string) ([]model.Document, error)
	Get(ctx context.Context, ownerID, id string) (model.Document, error)
	Update(ctx context.Context, ownerID, id string, req model.DocumentRequest) (model.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DocumentHandler handles HTTP requests for document operations.
type DocumentHandler struct {
	service Documents
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc Documents) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// HandleCreate handles POST /api/documents requests.
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	var req model.DocumentRequest
	if !decodeBody(w, r, documentBodyLimit, &req) {
		return
	}

	doc, err := h.service.Create(storeContext(r), userID, req)
	if err != nil {
		writeInternal(w, r, "create document", err)
		return
	}

	writeJSON(w, http.StatusCreated, model.DocumentResponse{Message: "Document created successfully", Document: doc})
}

// HandleList handles GET /api/documents requests.
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	docs, err := h.service.List(storeContext(r), userID)
	if err != nil {
		writeInternal(w, r, "list documents", err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// HandleGet handles GET /api/documents/{id} requests.
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	doc, err := h.service.Get(storeContext(r), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDocumentError(w, r, "get document", err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleUpdate handles PUT /api/documents/{id} requests.
func (h *DocumentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	var req model.DocumentRequest
	if !decodeBody(w, r, documentBodyLimit, &req) {
		return
	}

	doc, err := h.service.Update(storeContext(r), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeDocumentError(w, r, "update document", err)
		return
	}

	writeJSON(w, http.StatusOK, model.DocumentResponse{Message: "Document updated successfully", Document: doc})
}

// HandleDelete handles DELETE /api/documents/{id} requests.
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse(msgUnauthorize))
		return
	}

	if err := h.service.Delete(storeContext(r), userID, chi.URLParam(r, "id")); err != nil {
		writeDocumentError(w, r, "delete document", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Document deleted successfully"))
}

func writeDocumentError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, service.ErrDocumentNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse("Document not found"))
		return
	}
	writeInternal(w, r, op, err)
}
