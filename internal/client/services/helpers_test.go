package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getPref(t *testing.T, db *sql.DB, k string) (string, bool) {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM prefs WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func discardLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, "debug")
}

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginToken  string
	LoginErr    error
	RegisterErr error
	ListRet     []models.FileRecord
	ListErr     error
	UploadRet   models.FileRecord
	UploadErr   error
	DeleteErr   error

	// blocks Upload until closed, when set
	UploadGate chan struct{}

	LoginCalls     int
	LastRegister   [3]string
	LastUploadName string
	LastUploadBody string
	Deleted        []string
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegister = [3]string{username, email, password}
	return f.RegisterErr
}

func (f *fakeClient) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListRet, f.ListErr
}

func (f *fakeClient) Upload(ctx context.Context, filename string, body io.Reader) (models.FileRecord, error) {
	if f.UploadGate != nil {
		<-f.UploadGate
	}
	b, _ := io.ReadAll(body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUploadName = filename
	f.LastUploadBody = string(b)
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, id)
	return nil
}

func (f *fakeClient) Close() error { return nil }
