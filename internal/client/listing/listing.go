package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/common"
)

// PageSize is the number of records shown per page.
const PageSize = 6

// Page is one rendered slice of the listing.
type Page struct {
	Items      []models.FileRecord
	Number     int
	TotalPages int
	// Matching is the number of records after tab filtering.
	Matching int
	// Count is the size of the working list, the number shown as
	// "Uploaded Files: N".
	Count int
	Tab   models.Tab
	Sort  models.SortKey
	Term  string
}

// HasPager reports whether page navigation should be offered.
func (p Page) HasPager() bool {
	return p.TotalPages > 1
}

type Listing struct {
	mu sync.RWMutex

	all     []models.FileRecord
	working []models.FileRecord

	tab  models.Tab
	term string
	sort models.SortKey
	page int

	loc *time.Location
}

// New returns an empty listing on the "all" tab, in server order, page 1.
// Dates are formatted for search and display in loc (time.Local when nil).
func New(loc *time.Location) *Listing {
	if loc == nil {
		loc = time.Local
	}
	return &Listing{tab: models.TabAll, sort: models.SortNone, page: 1, loc: loc}
}

// Location is the zone dates are rendered in.
func (l *Listing) Location() *time.Location {
	return l.loc
}

// Replace installs a freshly fetched list. The current search term is
// re-applied so an active search survives a refresh.
func (l *Listing) Replace(records []models.FileRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = slices.Clone(records)
	l.applySearchLocked()
	l.clampLocked()
}

// Add appends a newly uploaded record. It joins the working list only when
// it matches the active search term.
func (l *Listing) Add(rec models.FileRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.all = append(l.all, rec)
	if l.term == "" || l.matchesLocked(rec, l.term) {
		l.working = append(l.working, rec)
	}
}

// Remove drops the record with the given key from both lists and re-runs an
// active search. It reports whether anything was removed.
func (l *Listing) Remove(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.all)
	l.all = slices.DeleteFunc(l.all, func(r models.FileRecord) bool { return r.Key() == key })
	l.working = slices.DeleteFunc(l.working, func(r models.FileRecord) bool { return r.Key() == key })
	if l.term != "" {
		l.applySearchLocked()
	}
	l.clampLocked()
	return len(l.all) != before
}

// SetTab switches the media tab and resets the page.
func (l *Listing) SetTab(tab models.Tab) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tab = tab
	l.page = 1
}

// Search replaces the working list with the records of the full list
// matching term (case-insensitive). An empty term restores the full list.
func (l *Listing) Search(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.term = strings.ToLower(term)
	l.applySearchLocked()
	l.page = 1
}

// SetSort changes the ordering and resets the page.
func (l *Listing) SetSort(key models.SortKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sort = key
	l.page = 1
}

// GoTo moves to page p, clamped to [1, TotalPages].
func (l *Listing) GoTo(p int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.page = p
	l.clampLocked()
}

// Next moves forward one page; on the last page it stays put.
func (l *Listing) Next() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.page++
	l.clampLocked()
}

// Prev moves back one page; on page 1 it stays put.
func (l *Listing) Prev() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.page--
	l.clampLocked()
}

// View returns the current page.
func (l *Listing) View() Page {
	l.mu.RLock()
	defer l.mu.RUnlock()

	filtered := l.filteredLocked()
	items, page := Paginate(filtered, l.page)

	return Page{
		Items:      slices.Clone(items),
		Number:     page,
		TotalPages: totalPages(len(filtered)),
		Matching:   len(filtered),
		Count:      len(l.working),
		Tab:        l.tab,
		Sort:       l.sort,
		Term:       l.term,
	}
}

// Len is the size of the full (unsearched) list.
func (l *Listing) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.all)
}

// Find resolves ref to a record. ref is either a 1-based position on the
// current page or a record key. Keys are tried first only when ref is not
// a valid position.
func (l *Listing) Find(ref string) (models.FileRecord, error) {
	page := l.View()

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(page.Items) {
		return page.Items[n-1], nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.all {
		if r.Key() == ref || (r.PublicID != "" && r.PublicID == ref) {
			return r, nil
		}
	}
	return models.FileRecord{}, fmt.Errorf("file %q: %w", ref, common.ErrorNotFound)
}

func (l *Listing) applySearchLocked() {
	l.working = Search(l.all, l.term, l.loc)
}

func (l *Listing) matchesLocked(r models.FileRecord, term string) bool {
	return Matches(r, term, l.loc)
}

func (l *Listing) filteredLocked() []models.FileRecord {
	out := FilterByTab(l.working, l.tab)
	Sort(out, l.sort)
	return out
}

func (l *Listing) clampLocked() {
	l.page = clamp(l.page, totalPages(len(l.filteredLocked())))
}

// Search returns the records of all matching term case-insensitively. An
// empty term returns a copy of all.
func Search(all []models.FileRecord, term string, loc *time.Location) []models.FileRecord {
	term = strings.ToLower(term)
	if term == "" {
		return slices.Clone(all)
	}
	out := make([]models.FileRecord, 0, len(all))
	for _, r := range all {
		if Matches(r, term, loc) {
			out = append(out, r)
		}
	}
	return out
}

// Matches checks filename, type name, public id and formatted date against
// a lower-cased term. The URL and its extension are not searched, so "mp4"
// finds a video only if one of those fields contains it. The date is
// FileRecord.Timestamp, so a record without uploadedAt is matched by its
// createdAt; only records with neither format as "Invalid Date".
func Matches(r models.FileRecord, term string, loc *time.Location) bool {
	fields := []string{
		r.Filename,
		string(r.Type()),
		r.PublicID,
		FormatDate(r.Timestamp(), loc),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// FilterByTab returns the records whose type belongs under tab, in order.
func FilterByTab(records []models.FileRecord, tab models.Tab) []models.FileRecord {
	out := make([]models.FileRecord, 0, len(records))
	for _, r := range records {
		if tab.Matches(r.Type()) {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records in place. SortByName is case-insensitive ascending,
// SortByDate is newest first; both break ties by key. SortNone keeps the
// server order.
func Sort(records []models.FileRecord, key models.SortKey) {
	switch key {
	case models.SortByName:
		slices.SortStableFunc(records, func(a, b models.FileRecord) int {
			return cmp.Or(
				cmp.Compare(strings.ToLower(a.Filename), strings.ToLower(b.Filename)),
				cmp.Compare(a.Key(), b.Key()),
			)
		})
	case models.SortByDate:
		slices.SortStableFunc(records, func(a, b models.FileRecord) int {
			return cmp.Or(
				b.Timestamp().Compare(a.Timestamp()),
				cmp.Compare(a.Key(), b.Key()),
			)
		})
	}
}

// Paginate returns page p (clamped) of records and the clamped page number.
func Paginate(records []models.FileRecord, p int) ([]models.FileRecord, int) {
	p = clamp(p, totalPages(len(records)))
	start := min((p-1)*PageSize, len(records))
	end := min(p*PageSize, len(records))
	return records[start:end], p
}

func totalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

func clamp(page, total int) int {
	return max(1, min(page, total))
}
