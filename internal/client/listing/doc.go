// Package listing holds the client-side view state of the remote file list:
// the full fetched list, the working list produced by a free-text search, the
// active media tab, the sort key and the current page.
//
// The pipeline applied by View is
//
//	full list -> search (replaces working list) -> tab filter -> sort -> page
//
// Search always runs against the full list. Changing tab, search term or
// sort key resets the page to 1. Page numbers are clamped to
// [1, TotalPages()] and the page size is fixed at PageSize.
//
// A Listing is safe for concurrent use; background uploads append to it
// while the REPL reads it.
package listing
