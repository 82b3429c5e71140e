package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/uploader/internal/client/models"
)

// Client is the contract for the remote file API.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) error
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	Upload(ctx context.Context, filename string, body io.Reader) (models.FileRecord, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// TokenProvider supplies the bearer token attached to outgoing requests.
// An empty token means the header is omitted.
type TokenProvider interface {
	Token() string
}
