package auth

import "pagesmith/internal/domain/models"

// JWTVerifier validates bearer tokens issued by the external identity
// provider. Session issuance itself lives outside this service; only
// verification happens here.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
