// Package common contains shared constants and small helpers used across
// the training portal client components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request id used to correlate logs.
	RequestIDHeaderName = "X-Request-ID"

	// CurrentUserKey is the local cache key holding the session identity.
	CurrentUserKey = "currentUser"
)
