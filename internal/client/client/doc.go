// Package client talks to the bookmarks HTTP API.
//
// HTTPClient is built on fiber's client Agent. It keeps the access token
// returned by Login in memory and sends it as a bearer token on every
// protected call. A 401 on a protected call drops the token, so the next call
// fails fast with ErrUnauthorized until the user logs in again.
//
// Non-2xx responses are mapped to sentinel errors that callers match with
// errors.Is: ErrBadRequest, ErrUnauthorized, ErrNotFound, ErrConflict and
// ErrServer. Transport failures are reported as ErrUnavailable. The server's
// {"error": "..."} message is kept in the wrapped error text.
package client
