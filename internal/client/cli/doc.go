// Package cli provides the interactive uploader command-line client.
//
// It wires configuration, the local preferences database, the HTTP API
// client and the services, then runs a REPL. Typical flow: restore the
// previous session and theme, log in if needed, then browse, upload,
// download and delete files.
//
// Key features:
//   - Register / Login / Logout
//   - Paged listing with media tabs, search, sort and preview density
//   - Background uploads with a status view
//   - Show, copy URL, download and delete individual files
//   - Persistent light/dark theme
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
