// Package auth is the authentication boundary: the transport hands it the
// opaque bearer token from the upgrade request and receives a validated
// user id. Token issuance and verification proper live outside this
// repository; this implementation accepts any non-empty token and uses it
// verbatim as the user id.
package auth

import "errors"

// ErrInvalidToken is returned for tokens that cannot map to a user id.
var ErrInvalidToken = errors.New("invalid token")

// Validate resolves a bearer token to a user id.
func Validate(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
