package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims carried by an applicant session token. The
// subject is the session ID.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}
