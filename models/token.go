package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the opaque bearer credential returned by POST /auth/token.
//
// The session layer treats AccessToken as opaque: it is never verified
// client-side and its contents carry no authority. The claim accessors below
// exist purely for diagnostics (logging the subject and expiry of a restored
// token) and use an unverified parse.
type Token struct {
	// AccessToken is the compact credential string sent in the
	// Authorization header of every authenticated request.
	AccessToken string `json:"access_token"`

	// TokenType is the backend-reported scheme, normally "bearer".
	TokenType string `json:"token_type"`
}

// String returns the opaque credential string.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.AccessToken
}

// Claims performs an unverified parse of the access token and returns its
// subject and expiry, when present. A non-JWT or malformed token yields
// zero values and ok=false; that is not an error condition, since the
// client makes no decisions based on token contents.
func (t Token) Claims() (subject string, expiry time.Time, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, jwt.MapClaims{})
	if err != nil {
		return "", time.Time{}, false
	}

	claims, isMap := parsed.Claims.(jwt.MapClaims)
	if !isMap {
		return "", time.Time{}, false
	}

	subject, _ = claims.GetSubject()
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expiry = exp.Time
	}
	return subject, expiry, true
}
