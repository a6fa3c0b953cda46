// Package client contains the remote resource clients of the training
// portal: one request/response round trip per logical action against the
// portal's REST API.
//
// # Overview
//
//   - Client is the transport-agnostic contract, split by resource into
//     AuthClient, UserClient, VideoClient and CategoryClient.
//   - HTTPClient implements it over net/http with JSON bodies. The login
//     call is form-encoded; its access token is kept in memory and sent as
//     a bearer token on later requests.
//
// # Error Handling
//
// Nothing panics past this package. Every failure is logged here and
// returned as an error wrapping one of the sentinels below, so callers can
// tell the cases apart with errors.Is while still treating any error as
// "no result":
//
//	ErrUnavailable       transport failure (connection refused, DNS, reset)
//	ErrUnauthorized      401 / 403, including rejected credentials
//	ErrNotFound          404
//	ErrBadRequest        400 / 409 / 422, the server rejected the input
//	ErrUnexpectedStatus  any other non-2xx status
//	ErrDecode            the response body did not have the expected shape
//
// There are no retries and no client-side timeout: the caller's context is
// the only deadline. WithCircuitBreaker adds fail-fast behaviour after
// repeated transport failures; an open breaker also reports ErrUnavailable.
package client
