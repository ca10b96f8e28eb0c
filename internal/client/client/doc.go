// Package client talks to the Tempero REST backend.
//
// # Overview
//
//  1. Client is the API contract: registration, login, post CRUD, ping.
//  2. HTTPClient implements it over JSON/HTTP. It attaches the session token
//     as a bearer header and classifies every outcome into an *Error.
//  3. InitDatabase opens the local SQLite file that holds the session and
//     applies the embedded goose migrations.
//
// # Error Handling
//
// Errors carry a Kind (validation, network, server, malformed) and wrap one
// of the sentinels (ErrUnavailable, ErrEmailTaken, ErrInvalidCredentials,
// ErrNotFound, ...). Match with errors.Is, branch with KindOf and render with
// UserMessage. Nothing is retried.
package client
