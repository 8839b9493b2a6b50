package jwtadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
)

// OIDCVerifier validates tokens issued by the trusted identity
// providers. Signing keys come from each provider's JWKS endpoint,
// discovered once and then refreshed in the background by the key
// cache.
type OIDCVerifier struct {
	issuers     map[string]ports.TrustedIssuer
	groupsClaim string
	cache       *jwk.Cache
	client      *http.Client
	logger      *slog.Logger

	mu       sync.Mutex
	jwksURLs map[string]string
}

func NewOIDCVerifier(ctx context.Context, issuers []ports.TrustedIssuer, groupsClaim string, timeout time.Duration, logger *slog.Logger) *OIDCVerifier {
	index := make(map[string]ports.TrustedIssuer, len(issuers))
	for _, issuer := range issuers {
		index[strings.TrimSuffix(issuer.Issuer, "/")] = issuer
	}

	return &OIDCVerifier{
		issuers:     index,
		groupsClaim: groupsClaim,
		cache:       jwk.NewCache(ctx),
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
		jwksURLs:    make(map[string]string),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (entities.Principal, error) {
	unverified, err := jwt.ParseInsecure([]byte(rawToken))
	if err != nil {
		return entities.Principal{}, fmt.Errorf("%w: %v", domainerrors.ErrTokenInvalid, err)
	}

	issuer := strings.TrimSuffix(unverified.Issuer(), "/")
	idp, ok := v.issuers[issuer]
	if !ok {
		return entities.Principal{}, fmt.Errorf("%w: %s", domainerrors.ErrIssuerNotTrusted, unverified.Issuer())
	}

	keys, err := v.keySet(ctx, idp.Issuer)
	if err != nil {
		return entities.Principal{}, fmt.Errorf("%w: %v", domainerrors.ErrTokenInvalid, err)
	}

	tok, err := jwt.Parse([]byte(rawToken),
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
		jwt.WithIssuer(unverified.Issuer()),
		jwt.WithAcceptableSkew(30*time.Second),
	)
	if err != nil {
		return entities.Principal{}, fmt.Errorf("%w: %v", domainerrors.ErrTokenInvalid, err)
	}
	return principalFromToken(tok, v.groupsClaim), nil
}

// keySet resolves the issuer's JWKS, registering it with the refreshing
// cache on first use.
func (v *OIDCVerifier) keySet(ctx context.Context, issuer string) (jwk.Set, error) {
	v.mu.Lock()
	jwksURL, known := v.jwksURLs[issuer]
	v.mu.Unlock()

	if !known {
		discovered, err := v.discoverJWKS(ctx, issuer)
		if err != nil {
			return nil, err
		}
		if err := v.cache.Register(discovered, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
			return nil, fmt.Errorf("register jwks %s: %w", discovered, err)
		}

		v.mu.Lock()
		v.jwksURLs[issuer] = discovered
		v.mu.Unlock()
		jwksURL = discovered

		if v.logger != nil {
			v.logger.Info("jwks registered",
				"event", "oidc_jwks_registered",
				"module", "identity-access/access-control",
				"layer", "adapter",
				"issuer", issuer,
				"jwks_url", discovered,
			)
		}
	}

	return v.cache.Get(ctx, jwksURL)
}

func (v *OIDCVerifier) discoverJWKS(ctx context.Context, issuer string) (string, error) {
	wellKnown := strings.TrimSuffix(issuer, "/") + "/.well-known/openid-configuration"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnown, nil)
	if err != nil {
		return "", fmt.Errorf("build discovery request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", wellKnown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", wellKnown, resp.StatusCode)
	}

	var doc struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode discovery document: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", fmt.Errorf("discovery document for %s has no jwks_uri", issuer)
	}
	return doc.JWKSURI, nil
}
