package auth

import (
	"errors"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// ChainVerifier accepts a token if any of its verifiers does
type ChainVerifier struct {
	verifiers []TokenVerifier
}

// NewChainVerifier combines verifiers, skipping nil entries
func NewChainVerifier(verifiers ...TokenVerifier) *ChainVerifier {
	c := &ChainVerifier{}
	for _, v := range verifiers {
		if v != nil {
			c.verifiers = append(c.verifiers, v)
		}
	}
	return c
}

// VerifyToken tries each verifier in order
func (c *ChainVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	for _, v := range c.verifiers {
		claims, err := v.VerifyToken(tokenString)
		if err == nil {
			return claims, nil
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier
func (c *ChainVerifier) Close() error {
	var errs []error
	for _, v := range c.verifiers {
		errs = append(errs, v.Close())
	}
	return errors.Join(errs...)
}
