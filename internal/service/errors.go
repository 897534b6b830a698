package service

import "errors"

var (
	// ErrInvalidDataProvided marks any request that fails validation. The
	// wrapping error message names the offending field.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountConflict is returned when an account is addressed through
	// the wrong sign-in method: a password login targeting a Google-only
	// account, or a Google sign-in targeting a password account.
	ErrAccountConflict = errors.New("account uses a different sign-in method")

	// ErrTokenCreationFailed is returned when signing a session JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid normalises every JWT validation failure
	// (expired, malformed, wrong issuer or signature).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrGoogleExchangeFailed is returned when the OAuth authorization code
	// cannot be redeemed for an access token.
	ErrGoogleExchangeFailed = errors.New("google code exchange failed")

	// ErrGoogleProfileFetchFailed is returned when the userinfo endpoint
	// does not yield a usable profile.
	ErrGoogleProfileFetchFailed = errors.New("google profile fetch failed")
)
