package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/listing"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/client/upload"
	"github.com/dmitrijs2005/uploader/internal/logging"
)

// FileService owns the listing and the upload tracker and keeps them in step
// with the remote API.
type FileService interface {
	Refresh(ctx context.Context) error
	Upload(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, rec models.FileRecord) error
	Wait()

	Listing() *listing.Listing
	Tracker() *upload.Tracker
}

type fileService struct {
	client  client.Client
	listing *listing.Listing
	tracker *upload.Tracker
	log     logging.Logger

	wg sync.WaitGroup
}

func NewFileService(client client.Client, l *listing.Listing, tr *upload.Tracker, log logging.Logger) FileService {
	return &fileService{client: client, listing: l, tracker: tr, log: log.With("service", "files")}
}

func (s *fileService) Listing() *listing.Listing { return s.listing }
func (s *fileService) Tracker() *upload.Tracker  { return s.tracker }

// Refresh fetches the file list. On failure the error is logged and the
// listing keeps its previous contents.
func (s *fileService) Refresh(ctx context.Context) error {
	records, err := s.client.ListFiles(ctx)
	if err != nil {
		s.log.Error(ctx, "error fetching files", "err", err)
		return fmt.Errorf("fetch files: %w", err)
	}
	s.listing.Replace(records)
	s.log.Debug(ctx, "files fetched", "count", len(records))
	return nil
}

// Upload opens path and sends it in the background. It returns the tracking
// id as soon as the upload has started; the outcome is recorded in the
// tracker and a successful record is appended to the listing.
func (s *fileService) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		_ = f.Close()
		return "", fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	id := s.tracker.Begin(name)
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer f.Close()

		rec, err := s.client.Upload(ctx, name, f)
		if err != nil {
			s.log.Error(ctx, "upload failed", "upload_id", id, "file", name, "err", err)
			s.tracker.Fail(id, err)
			return
		}
		s.listing.Add(rec)
		s.tracker.Finish(id, rec)
		s.log.Info(ctx, "upload finished", "upload_id", id, "file", name, "id", rec.Key())
	}()

	return id, nil
}

// Delete removes rec on the server and then from the listing. Nothing is
// removed locally when the server call fails.
func (s *fileService) Delete(ctx context.Context, rec models.FileRecord) error {
	key := rec.Key()
	if err := s.client.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "error deleting file", "id", key, "err", err)
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.listing.Remove(key)
	return nil
}

// Wait blocks until every background upload has completed.
func (s *fileService) Wait() {
	s.wg.Wait()
}
