// Package prefs persists the client's small key/value state in the local
// SQLite database: the dark-mode flag and the opaque access token.
//
// Values are stored as text exactly as given; nothing is validated or
// encrypted.
//
// Table layout (see internal/client/migrations):
//
//	CREATE TABLE prefs (
//	  key   TEXT PRIMARY KEY,
//	  value TEXT NOT NULL
//	);
package prefs
