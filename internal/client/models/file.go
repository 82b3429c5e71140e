// Package models defines client-side data models used by the uploader CLI.
package models

import (
	"errors"
	"time"
)

// ErrInvalidRecord is returned by FileRecord.Validate.
var ErrInvalidRecord = errors.New("invalid file record")

// FileRecord is the server-returned metadata describing one uploaded file.
type FileRecord struct {
	ID         string    `json:"_id"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Tags       []string  `json:"tags,omitempty"`
	PublicID   string    `json:"public_id,omitempty"`
	UploadedAt time.Time `json:"uploadedAt,omitzero"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
	UpdatedAt  time.Time `json:"updatedAt,omitzero"`
}

// Key is the identifier used for lookups and deletes: ID, or PublicID when
// the server did not send one.
func (f FileRecord) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.PublicID
}

// Timestamp is the upload time shown to the user: UploadedAt, falling back
// to CreatedAt. Zero when the server sent neither.
func (f FileRecord) Timestamp() time.Time {
	if !f.UploadedAt.IsZero() {
		return f.UploadedAt
	}
	return f.CreatedAt
}

// Type classifies the record by the suffix of its URL.
func (f FileRecord) Type() MediaType {
	return Classify(f.URL)
}

// Validate reports records the client cannot work with: no URL to preview,
// or no identifier to delete by.
func (f FileRecord) Validate() error {
	if f.URL == "" {
		return errors.Join(ErrInvalidRecord, errors.New("missing url"))
	}
	if f.Key() == "" {
		return errors.Join(ErrInvalidRecord, errors.New("missing _id and public_id"))
	}
	return nil
}
