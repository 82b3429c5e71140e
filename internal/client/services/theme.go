package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/uploader/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/uploader/internal/dbx"
)

// ThemeService reads and toggles the persisted dark-mode flag.
type ThemeService interface {
	IsDark(ctx context.Context) (bool, error)
	Toggle(ctx context.Context) (bool, error)
}

type themeService struct {
	db *sql.DB
}

func NewThemeService(db *sql.DB) ThemeService {
	return &themeService{db: db}
}

// IsDark treats a missing or unparsable value as light mode.
func (s *themeService) IsDark(ctx context.Context) (bool, error) {
	return readDarkMode(ctx, prefs.NewSQLiteRepository(s.db))
}

// Toggle flips the flag and stores it as "true" or "false", returning the
// new value.
func (s *themeService) Toggle(ctx context.Context) (bool, error) {
	var dark bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := prefs.NewSQLiteRepository(tx)
		cur, err := readDarkMode(ctx, repo)
		if err != nil {
			return err
		}
		dark = !cur
		return repo.Set(ctx, prefs.KeyDarkMode, strconv.FormatBool(dark))
	})
	if err != nil {
		return false, fmt.Errorf("toggle theme: %w", err)
	}
	return dark, nil
}

func readDarkMode(ctx context.Context, repo prefs.Repository) (bool, error) {
	v, err := repo.Get(ctx, prefs.KeyDarkMode)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}
