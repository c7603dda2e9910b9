// Package common contains shared constants and sentinel errors used across
// GigLine components.
package common

const (
	// APIVersion is the backend API version the client speaks. It appears
	// both in the request path prefix and in the X-API-Version header.
	APIVersion = "v1"

	// AuthorizationScheme is the credential scheme the backend expects in
	// the Authorization header ("Token <access-token>").
	AuthorizationScheme = "Token"

	// APIVersionHeaderName carries the API version on every outbound request.
	APIVersionHeaderName = "X-API-Version"

	// RequestIDHeaderName carries a client-generated correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// AccessTokenKey and RefreshTokenKey are the local storage keys under
	// which the credential pair is persisted.
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)
