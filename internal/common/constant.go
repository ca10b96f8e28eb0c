package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// Keys of the persisted session entries.
const (
	SessionTokenKey = "token"
	SessionUserKey  = "usuario"
)
