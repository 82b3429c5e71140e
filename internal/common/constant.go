package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "
