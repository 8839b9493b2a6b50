package errors

import "errors"

var (
	ErrTokenMissing      = errors.New("bearer token missing")
	ErrTokenInvalid      = errors.New("bearer token invalid")
	ErrIssuerNotTrusted  = errors.New("token issuer not trusted")
	ErrAccessDenied      = errors.New("access denied")
	ErrPolicyUnavailable = errors.New("policy engine unavailable")
	ErrExchangeFailed    = errors.New("token exchange failed")
)
