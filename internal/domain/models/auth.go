package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the JWT claims issued by the external identity provider.
// Only the subject (user id) and role are consumed by this service.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
