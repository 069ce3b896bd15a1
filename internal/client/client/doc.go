// Package client is the CLI's HTTP client for the directory API.
//
// # Overview
//
// The Client interface lists one method per endpoint. HTTPClient implements
// it over net/http with a per-request timeout, a request id header on every
// call and the session token, once known, as a bearer token.
//
// # Error Handling
//
// Transport failures and timeouts are reported as ErrUnavailable so callers
// can fall back to cached data. Non-2xx responses become *APIError, whose
// message is taken from the body's error field (details appended when
// present). APIError matches common.ErrorValidation, common.ErrorNotFound and
// common.ErrorAlreadyExists through errors.Is for 400, 404 and 409.
package client
