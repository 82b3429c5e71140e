// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The Client interface describing the remote file API: Login, Register,
//     ListFiles, Upload and Delete.
//  2. HTTPClient, a JSON-over-HTTP implementation. It attaches the session's
//     token as "Authorization: Bearer <token>" when one is present and checks
//     that each reply has the expected shape before handing it back.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is / errors.As:
//
//   - ErrUnavailable: the request could not be sent or answered.
//   - ErrMalformedResponse: a 2xx body did not decode to the expected shape.
//   - *APIError: any non-2xx reply, with the server's "error" message when
//     present. errors.Is(err, ErrUnauthorized) holds for 401 and 403.
//
// ServerMessage extracts the message to show the user, with a fallback.
//
// All operations accept context.Context and honor cancellation.
package client
