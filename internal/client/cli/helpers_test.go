package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/listing"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/client/preview"
	"github.com/dmitrijs2005/uploader/internal/client/services"
	"github.com/dmitrijs2005/uploader/internal/client/session"
	"github.com/dmitrijs2005/uploader/internal/client/upload"
	"github.com/dmitrijs2005/uploader/internal/logging"
)

// ------------ fakes ------------

type fakeAPI struct {
	mu        sync.Mutex
	files     []models.FileRecord
	listErr   error
	uploadRet models.FileRecord
	uploadErr error
	deleteErr error
	deleted   []string
}

func (f *fakeAPI) Login(context.Context, string, string) (string, error) { return "tok", nil }
func (f *fakeAPI) Register(context.Context, string, string, string) error {
	return nil
}
func (f *fakeAPI) ListFiles(context.Context) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files, f.listErr
}
func (f *fakeAPI) Upload(_ context.Context, _ string, body io.Reader) (models.FileRecord, error) {
	_, _ = io.Copy(io.Discard, body)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadRet, f.uploadErr
}
func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeAPI) Close() error { return nil }

type fakeAuth struct {
	sess *session.Session

	loginEmail, loginPass string
	loginErr              error

	regUser, regEmail, regPass string
	regErr                     error

	logoutCalled bool
	logoutErr    error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if email == "" || password == "" {
		return services.ErrMissingCredentials
	}
	if f.loginErr != nil {
		return f.loginErr
	}
	f.sess.Login("tok")
	return nil
}

func (f *fakeAuth) Register(_ context.Context, username, email, password string) error {
	f.regUser, f.regEmail, f.regPass = username, email, password
	if username == "" || email == "" || password == "" {
		return services.ErrMissingRegistration
	}
	return f.regErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.sess.Logout()
	return f.logoutErr
}

func (f *fakeAuth) Restore(context.Context) (bool, error) { return false, nil }

type fakeTheme struct {
	dark bool
	err  error
}

func (f *fakeTheme) IsDark(context.Context) (bool, error) { return f.dark, nil }
func (f *fakeTheme) Toggle(context.Context) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.dark = !f.dark
	return f.dark, nil
}

type fakeDownload struct {
	got  models.FileRecord
	dest string
	ret  string
	err  error
}

func (f *fakeDownload) Download(_ context.Context, rec models.FileRecord, dest string) (string, error) {
	f.got, f.dest = rec, dest
	return f.ret, f.err
}

// ------------ helpers ------------

type testApp struct {
	*App
	api      *fakeAPI
	auth     *fakeAuth
	theme    *fakeTheme
	download *fakeDownload
	buf      *bytes.Buffer
}

func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()
	logger := logging.NewTextLogger(io.Discard, "error")
	sess := session.New()
	api := &fakeAPI{}
	auth := &fakeAuth{sess: sess}
	theme := &fakeTheme{}
	dl := &fakeDownload{}
	buf := &bytes.Buffer{}

	if len(input) > 0 && input[len(input)-1] != "" {
		input = append(input, "")
	}

	a := &App{
		session:         sess,
		authService:     auth,
		fileService:     services.NewFileService(api, listing.New(time.UTC), upload.NewTracker(), logger),
		themeService:    theme,
		downloadService: dl,
		log:             logger,
		density:         preview.DensityTiles,
		reader:          bufio.NewReader(strings.NewReader(strings.Join(input, "\n"))),
		out:             buf,
	}
	return &testApp{App: a, api: api, auth: auth, theme: theme, download: dl, buf: buf}
}

func (ta *testApp) withFiles(t *testing.T, files ...models.FileRecord) *testApp {
	t.Helper()
	ta.api.files = files
	if err := ta.fileService.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	ta.buf.Reset()
	return ta
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func file(id, name string) models.FileRecord {
	return models.FileRecord{
		ID:         id,
		Filename:   name,
		URL:        "https://cdn.example.com/" + name,
		UploadedAt: time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}
