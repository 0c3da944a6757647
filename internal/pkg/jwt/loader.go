// internal/pkg/jwt/loader.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config selects RS256 when both key paths are set, HS256 with Secret otherwise.
type Config struct {
	PrivPath string
	PubPath  string
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	KID      string
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

func LoadAndBuild(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}

	if cfg.PrivPath != "" && cfg.PubPath != "" {
		priv, err := LoadRSAPrivateKeyFromPEM(cfg.PrivPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key from %s: %w", cfg.PrivPath, err)
		}
		pub, err := LoadRSAPublicKeyFromPEM(cfg.PubPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key from %s: %w", cfg.PubPath, err)
		}
		return &Manager{
			Generator: NewGenerator(jwt.SigningMethodRS256, priv, cfg.Issuer, cfg.Audience, cfg.KID, cfg.TTL),
			Verifier:  NewVerifier(jwt.SigningMethodRS256, pub, cfg.Issuer, cfg.Audience),
		}, nil
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt requires either RSA key paths or a secret")
	}
	return NewHMACManager([]byte(cfg.Secret), cfg.Issuer, cfg.Audience, cfg.TTL), nil
}

// NewHMACManager builds an HS256 manager around a shared secret.
func NewHMACManager(secret []byte, issuer, audience string, ttl time.Duration) *Manager {
	return &Manager{
		Generator: NewGenerator(jwt.SigningMethodHS256, secret, issuer, audience, "", ttl),
		Verifier:  NewVerifier(jwt.SigningMethodHS256, secret, issuer, audience),
	}
}
