package jwtadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
)

// LocalVerifier validates HS256 tokens minted by this service. It backs
// the local authentication mode used in development and CI, where no
// external identity provider is reachable.
type LocalVerifier struct {
	Secret      []byte
	GroupsClaim string
}

func (v LocalVerifier) Verify(_ context.Context, rawToken string) (entities.Principal, error) {
	tok, err := jwt.Parse([]byte(rawToken),
		jwt.WithKey(jwa.HS256, v.Secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	if err != nil {
		return entities.Principal{}, fmt.Errorf("%w: %v", domainerrors.ErrTokenInvalid, err)
	}
	return principalFromToken(tok, v.GroupsClaim), nil
}

// Mint issues a local token carrying the given identity. Dev tooling
// and tests are the only callers.
func (v LocalVerifier) Mint(principal entities.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	builder := jwt.NewBuilder().
		Subject(principal.Subject).
		Issuer(principal.Issuer).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim("name", principal.Name).
		Claim("email", principal.Email)
	if len(principal.Groups) > 0 {
		builder = builder.Claim(v.GroupsClaim, principal.Groups)
	}

	tok, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, v.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}
