// Package client talks to the job board REST API and bootstraps the CLI's
// local sqlite database.
//
// Transport failures are reported as ErrUnavailable and 401 responses as
// ErrUnauthorized, both matchable with errors.Is. Any other non-2xx response
// becomes an *APIError carrying the server's message.
package client
