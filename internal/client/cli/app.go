package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/config"
	"github.com/dmitrijs2005/uploader/internal/client/listing"
	"github.com/dmitrijs2005/uploader/internal/client/preview"
	"github.com/dmitrijs2005/uploader/internal/client/services"
	"github.com/dmitrijs2005/uploader/internal/client/session"
	"github.com/dmitrijs2005/uploader/internal/client/upload"
	"github.com/dmitrijs2005/uploader/internal/logging"
)

type App struct {
	config          *config.Config
	session         *session.Session
	authService     services.AuthService
	fileService     services.FileService
	themeService    services.ThemeService
	downloadService services.DownloadService
	apiClient       client.Client
	db              *sql.DB
	log             logging.Logger

	density preview.Density
	dark    bool

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	sess := session.New()

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, sess, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s3opts := services.S3Options{
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}

	return &App{
		config:          c,
		session:         sess,
		authService:     services.NewAuthService(apiClient, db, sess, logger),
		fileService:     services.NewFileService(apiClient, listing.New(c.TimeLocation()), upload.NewTracker(), logger),
		themeService:    services.NewThemeService(db),
		downloadService: services.NewDownloadService(&http.Client{Timeout: c.RequestTimeout}, s3opts, logger),
		apiClient:       apiClient,
		db:              db,
		log:             logger,
		density:         preview.DensityTiles,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
	}, nil
}

// Run restores the previous session and theme, then blocks in the REPL
// until the user exits or input ends. Pending uploads are awaited before
// returning.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	if dark, err := a.themeService.IsDark(ctx); err != nil {
		a.log.Warn(ctx, "could not read theme", "err", err)
	} else {
		a.dark = dark
	}

	log.Println("Welcome to the uploader CLI (type 'help' for commands)")

	if ok, err := a.authService.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "err", err)
	} else if ok {
		_ = a.Refresh(ctx, nil)
	}

	runREPL(ctx, a, a.promptStatus, a.reader)

	if ctx.Err() != nil {
		if n := len(a.fileService.Tracker().Pending()); n > 0 {
			fmt.Fprintf(a.out, "Interrupted, %d upload(s) abandoned\n", n)
		}
		return
	}

	if n := len(a.fileService.Tracker().Pending()); n > 0 {
		fmt.Fprintf(a.out, "Waiting for %d upload(s) to finish...\n", n)
	}
	a.fileService.Wait()
	a.reportUploads()
}

func (a *App) close() {
	if a.apiClient != nil {
		_ = a.apiClient.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.IsAuthenticated()
}

// getStatus renders the prompt status, e.g. "(dark, logged in)".
func (a *App) getStatus() string {
	mode := "light"
	if a.dark {
		mode = "dark"
	}
	auth := "guest"
	if a.isLoggedIn() {
		auth = "logged in"
	}
	return fmt.Sprintf("(%s, %s)", mode, auth)
}

func (a *App) palette() palette {
	return paletteFor(a.dark)
}

// promptStatus is getStatus in the prompt colour of the active theme.
func (a *App) promptStatus() string {
	p := a.palette()
	return p.prompt + a.getStatus() + p.reset
}
