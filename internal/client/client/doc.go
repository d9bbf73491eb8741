// Package client is the HTTP transport of the taskadmin client.
//
// # Overview
//
// Do issues one request against the configured backend and always returns a
// Response envelope: exactly one of Data or Error is set, and Status carries
// the HTTP status code, or 0 when no response was obtained (DNS failure,
// refused connection, cancelled context, unparsable body). Do never returns
// a Go error; failures are data.
//
// Resource clients turn an envelope into (T, error) with Response.Unwrap.
//
// # Error Handling
//
// Unwrap returns *APIError for transport and HTTP failures and
// ErrMissingData for a successful response without a payload. APIError
// matches ErrUnavailable (status 0) and ErrUnauthorized (401/403) with
// errors.Is.
package client
