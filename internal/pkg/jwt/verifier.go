// internal/pkg/jwt/verifier.go
package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Verifier struct {
	method   jwt.SigningMethod
	key      interface{}
	issuer   string
	audience string
}

func NewVerifier(method jwt.SigningMethod, key interface{}, issuer, audience string) *Verifier {
	return &Verifier{
		method:   method,
		key:      key,
		issuer:   issuer,
		audience: audience,
	}
}

// Verify validates signature, expiry, issuer and audience and returns the claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	if v.key == nil {
		return nil, fmt.Errorf("jwt verifier has nil key")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != v.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.key, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != v.issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.issuer, claims.Issuer)
	}

	if !claims.VerifyAudience(v.audience, true) {
		return nil, fmt.Errorf("invalid audience")
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("token has no jti")
	}

	return claims, nil
}
