package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/listing"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/client/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFiles(fc *fakeClient) FileService {
	return NewFileService(fc, listing.New(time.UTC), upload.NewTracker(), discardLogger())
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func rec(id, name string) models.FileRecord {
	return models.FileRecord{ID: id, Filename: name, URL: "https://cdn.example.com/" + name}
}

func TestRefresh_ReplacesListing(t *testing.T) {
	fc := &fakeClient{ListRet: []models.FileRecord{rec("1", "a.png"), rec("2", "b.mp4")}}
	svc := newFiles(fc)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, svc.Listing().Len())
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	fc := &fakeClient{ListRet: []models.FileRecord{rec("1", "a.png")}}
	svc := newFiles(fc)
	require.NoError(t, svc.Refresh(context.Background()))

	fc.ListErr = client.ErrUnavailable
	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, 1, svc.Listing().Len())
}

func TestUpload_SuccessAppendsAndFinishes(t *testing.T) {
	fc := &fakeClient{UploadRet: rec("srv-1", "cat.png"), UploadGate: make(chan struct{})}
	svc := newFiles(fc)
	path := writeTemp(t, "cat.png", "PNG")

	id, err := svc.Upload(context.Background(), path)
	require.NoError(t, err)

	pending := svc.Tracker().Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, "cat.png", pending[0].Filename)

	close(fc.UploadGate)
	svc.Wait()

	task, ok := svc.Tracker().Get(id)
	require.True(t, ok)
	assert.Equal(t, upload.StatusDone, task.Status)
	require.NotNil(t, task.Record)
	assert.Equal(t, "srv-1", task.Record.Key())

	assert.Equal(t, "cat.png", fc.LastUploadName)
	assert.Equal(t, "PNG", fc.LastUploadBody)
	assert.Equal(t, 1, svc.Listing().Len())
	assert.Empty(t, svc.Tracker().Pending())
}

func TestUpload_CancelledCallerContextDoesNotAbort(t *testing.T) {
	fc := &fakeClient{UploadRet: rec("srv-1", "a.txt")}
	svc := newFiles(fc)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Upload(ctx, writeTemp(t, "a.txt", "x"))
	require.NoError(t, err)
	cancel()
	svc.Wait()

	assert.Equal(t, 1, svc.Listing().Len())
}

func TestUpload_FailureIsTracked(t *testing.T) {
	fc := &fakeClient{UploadErr: errors.New("boom")}
	svc := newFiles(fc)

	id, err := svc.Upload(context.Background(), writeTemp(t, "a.txt", "x"))
	require.NoError(t, err)
	svc.Wait()

	task, ok := svc.Tracker().Get(id)
	require.True(t, ok)
	assert.Equal(t, upload.StatusFailed, task.Status)
	assert.EqualError(t, task.Err, "boom")
	assert.Zero(t, svc.Listing().Len())
}

func TestUpload_BadPath(t *testing.T) {
	svc := newFiles(&fakeClient{})

	_, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.Upload(context.Background(), t.TempDir())
	require.Error(t, err)

	assert.Empty(t, svc.Tracker().All(), "nothing tracked for uploads that never started")
}

func TestUpload_ConcurrentCompletions(t *testing.T) {
	fc := &fakeClient{UploadRet: rec("x", "f.txt")}
	svc := newFiles(fc)

	for i := 0; i < 8; i++ {
		_, err := svc.Upload(context.Background(), writeTemp(t, "f.txt", "x"))
		require.NoError(t, err)
	}
	svc.Wait()

	assert.Equal(t, 8, svc.Listing().Len())
	assert.Len(t, svc.Tracker().Drain(), 8)
}

func TestDelete(t *testing.T) {
	fc := &fakeClient{ListRet: []models.FileRecord{rec("1", "a.png"), rec("2", "b.png")}}
	svc := newFiles(fc)
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), rec("1", "a.png")))
	assert.Equal(t, []string{"1"}, fc.Deleted)
	assert.Equal(t, 1, svc.Listing().Len())
}

func TestDelete_FailureKeepsRecord(t *testing.T) {
	fc := &fakeClient{ListRet: []models.FileRecord{rec("1", "a.png")}}
	svc := newFiles(fc)
	require.NoError(t, svc.Refresh(context.Background()))

	fc.DeleteErr = &client.APIError{StatusCode: 500}
	require.Error(t, svc.Delete(context.Background(), rec("1", "a.png")))
	assert.Equal(t, 1, svc.Listing().Len())
}

func TestDelete_FallsBackToPublicID(t *testing.T) {
	r := models.FileRecord{PublicID: "pub-9", URL: "https://x/y.pdf"}
	fc := &fakeClient{ListRet: []models.FileRecord{r}}
	svc := newFiles(fc)
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), r))
	assert.Equal(t, []string{"pub-9"}, fc.Deleted)
	assert.Zero(t, svc.Listing().Len())
}
