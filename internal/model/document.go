package model

import "time"

// Document is a study note owned by exactly one user.
type Document struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentRequest is the body of document create and update requests.
type DocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentResponse wraps a document with a status message.
type DocumentResponse struct {
	Message  string   `json:"message"`
	Document Document `json:"document"`
}
