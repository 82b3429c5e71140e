package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/client/preview"
	"github.com/dmitrijs2005/uploader/internal/client/upload"
)

const (
	msgUploadFailed = "Upload failed"
	msgDeleteFailed = "Failed to delete file."
	msgDeleteAsk    = "Are you sure you want to delete this file?"
)

// List prints the current page.
func (a *App) List(_ context.Context, _ []string) error {
	l := a.fileService.Listing()
	renderPage(a.out, l.View(), a.density, a.palette(), l)
	return nil
}

// Refresh refetches the list from the server. A failed fetch is only logged
// and the previous list is shown again.
func (a *App) Refresh(ctx context.Context, args []string) error {
	_ = a.fileService.Refresh(ctx)
	return a.List(ctx, args)
}

func (a *App) Tab(ctx context.Context, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	tab, err := models.ParseTab(name)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: tab <all|image|video|audio|document>")
		return err
	}
	a.fileService.Listing().SetTab(tab)
	return a.List(ctx, nil)
}

// Search filters by the rest of the line; no argument clears the search.
func (a *App) Search(ctx context.Context, args []string) error {
	a.fileService.Listing().Search(strings.Join(args, " "))
	return a.List(ctx, nil)
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: sort <date|name|none>")
		return nil
	}
	key, err := models.ParseSortKey(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: sort <date|name|none>")
		return err
	}
	a.fileService.Listing().SetSort(key)
	return a.List(ctx, nil)
}

func (a *App) View(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: view <list|medium|tiles>")
		return nil
	}
	d, err := preview.ParseDensity(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: view <list|medium|tiles>")
		return err
	}
	a.density = d
	return a.List(ctx, nil)
}

func (a *App) Next(ctx context.Context, _ []string) error {
	a.fileService.Listing().Next()
	return a.List(ctx, nil)
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	a.fileService.Listing().Prev()
	return a.List(ctx, nil)
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: page <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: page <n>")
		return err
	}
	a.fileService.Listing().GoTo(n)
	return a.List(ctx, nil)
}

// findRecord resolves the first argument (position on the page or id),
// prompting for it when missing. It prints its own errors.
func (a *App) findRecord(args []string, usage string) (models.FileRecord, bool) {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else {
		var err error
		ref, err = getSimpleText(a.reader, "Enter file number or id", a.out)
		if err != nil {
			return models.FileRecord{}, false
		}
	}
	if ref == "" {
		fmt.Fprintln(a.out, usage)
		return models.FileRecord{}, false
	}

	rec, err := a.fileService.Listing().Find(ref)
	if err != nil {
		fmt.Fprintf(a.out, "File %s not found\n", ref)
		return models.FileRecord{}, false
	}
	return rec, true
}

func (a *App) Show(_ context.Context, args []string) error {
	rec, ok := a.findRecord(args, "Usage: show <n|id>")
	if !ok {
		return nil
	}
	renderDetails(a.out, rec, a.density, a.palette(), a.fileService.Listing())
	return nil
}

// URL prints the record's URL so it can be copied.
func (a *App) URL(_ context.Context, args []string) error {
	rec, ok := a.findRecord(args, "Usage: url <n|id>")
	if !ok {
		return nil
	}
	fmt.Fprintln(a.out, rec.URL)
	return nil
}

func (a *App) Download(ctx context.Context, args []string) error {
	rec, ok := a.findRecord(args, "Usage: download <n|id> [dest]")
	if !ok {
		return nil
	}
	dest := ""
	if len(args) > 1 {
		dest = args[1]
	}

	path, err := a.downloadService.Download(ctx, rec, dest)
	if err != nil {
		fmt.Fprintln(a.out, "Download failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved to", path)
	return nil
}

// Upload starts a background upload of one local file. The result is
// reported before a later prompt.
func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	switch len(args) {
	case 0:
		var err error
		path, err = getSimpleText(a.reader, "Enter file path", a.out)
		if err != nil {
			return err
		}
	case 1:
		path = args[0]
	default:
		fmt.Fprintln(a.out, "Please select one file at a time")
		return nil
	}
	if path == "" {
		fmt.Fprintln(a.out, "Usage: upload <path>")
		return nil
	}

	id, err := a.fileService.Upload(ctx, path)
	if err != nil {
		fmt.Fprintf(a.out, "%s: %v\n", msgUploadFailed, err)
		return err
	}
	task, _ := a.fileService.Tracker().Get(id)
	fmt.Fprintf(a.out, "Uploading %s (%s)\n", task.Filename, id)
	return nil
}

// Delete asks for confirmation first. Nothing changes locally when the
// server refuses.
func (a *App) Delete(ctx context.Context, args []string) error {
	rec, ok := a.findRecord(args, "Usage: delete <n|id>")
	if !ok {
		return nil
	}

	yes, err := confirm(a.reader, msgDeleteAsk, a.out)
	if err != nil || !yes {
		return err
	}

	if err := a.fileService.Delete(ctx, rec); err != nil {
		fmt.Fprintln(a.out, msgDeleteFailed)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", displayName(rec))
	return nil
}

// Status lists uploads still in flight.
func (a *App) Status(_ context.Context, _ []string) error {
	pending := a.fileService.Tracker().Pending()
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "No uploads in progress")
		return nil
	}
	now := time.Now()
	for _, t := range pending {
		fmt.Fprintf(a.out, "%s  %s  uploading for %s\n", t.ID, t.Filename, now.Sub(t.StartedAt).Truncate(time.Second))
	}
	return nil
}

// reportUploads prints, once each, the outcome of uploads that finished
// since the last call.
func (a *App) reportUploads() {
	for _, t := range a.fileService.Tracker().Drain() {
		switch t.Status {
		case upload.StatusDone:
			fmt.Fprintf(a.out, "Uploaded %s\n", t.Filename)
		case upload.StatusFailed:
			fmt.Fprintf(a.out, "%s: %s: %v\n", msgUploadFailed, t.Filename, t.Err)
		}
	}
}
