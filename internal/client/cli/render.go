package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/uploader/internal/client/listing"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/client/preview"
)

// renderPage prints the heading, one row per record and, when there is more
// than one page, the pager line.
func renderPage(w io.Writer, p listing.Page, d preview.Density, pal palette, l *listing.Listing) {
	fmt.Fprintln(w, pal.headingText(fmt.Sprintf("Uploaded Files: %d", p.Count)))

	filters := []string{"tab: " + string(p.Tab), "sort: " + string(p.Sort), "view: " + string(d)}
	if p.Term != "" {
		filters = append(filters, fmt.Sprintf("search: %q", p.Term))
	}
	fmt.Fprintln(w, pal.mutedText("["+strings.Join(filters, " | ")+"]"))

	if len(p.Items) == 0 {
		fmt.Fprintln(w, "No files found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, rec := range p.Items {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\t%s\n",
			i+1,
			displayName(rec),
			rec.Type(),
			listing.FormatDate(rec.Timestamp(), l.Location()),
			preview.Render(rec, d),
		)
	}
	_ = tw.Flush()

	if p.HasPager() {
		fmt.Fprintln(w, pal.mutedText(fmt.Sprintf("Page %d of %d (next, prev, page <n>)", p.Number, p.TotalPages)))
	}
}

// renderDetails prints every field of rec followed by its preview.
func renderDetails(w io.Writer, rec models.FileRecord, d preview.Density, pal palette, l *listing.Listing) {
	fmt.Fprintln(w, pal.headingText(displayName(rec)))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", rec.Key())
	if rec.PublicID != "" {
		fmt.Fprintf(tw, "Public ID:\t%s\n", rec.PublicID)
	}
	fmt.Fprintf(tw, "Type:\t%s\n", rec.Type())
	fmt.Fprintf(tw, "Uploaded:\t%s\n", listing.FormatDate(rec.Timestamp(), l.Location()))
	if len(rec.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(rec.Tags, ", "))
	}
	fmt.Fprintf(tw, "URL:\t%s\n", rec.URL)
	_ = tw.Flush()

	fmt.Fprintln(w, preview.Render(rec, d))
}

func displayName(rec models.FileRecord) string {
	if rec.Filename != "" {
		return rec.Filename
	}
	return rec.URL
}
