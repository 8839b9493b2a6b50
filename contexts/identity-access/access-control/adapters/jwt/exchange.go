package jwtadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
)

const (
	exchangeGrantType = "urn:ietf:params:oauth:grant-type:token-exchange"
	subjectTokenType  = "urn:ietf:params:oauth:token-type:access_token"
)

// Exchanger swaps a caller token for one bound to another audience,
// using the client credentials registered for the token's issuer. Vault
// logins are the only consumer.
type Exchanger struct {
	issuers map[string]ports.TrustedIssuer
	client  *http.Client
	logger  *slog.Logger
}

func NewExchanger(issuers []ports.TrustedIssuer, timeout time.Duration, logger *slog.Logger) *Exchanger {
	index := make(map[string]ports.TrustedIssuer, len(issuers))
	for _, issuer := range issuers {
		index[strings.TrimSuffix(issuer.Issuer, "/")] = issuer
	}
	return &Exchanger{
		issuers: index,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (e *Exchanger) Exchange(ctx context.Context, issuer, subjectToken, audience string) (string, error) {
	idp, ok := e.issuers[strings.TrimSuffix(issuer, "/")]
	if !ok {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrIssuerNotTrusted, issuer)
	}
	if idp.ClientID == "" {
		return "", fmt.Errorf("%w: no client registered for %s", domainerrors.ErrExchangeFailed, issuer)
	}

	form := url.Values{}
	form.Set("grant_type", exchangeGrantType)
	form.Set("subject_token", subjectToken)
	form.Set("subject_token_type", subjectTokenType)
	form.Set("audience", audience)
	form.Set("scope", "openid profile email")
	form.Set("client_id", idp.ClientID)
	form.Set("client_secret", idp.ClientSecret)

	endpoint := strings.TrimSuffix(idp.Issuer, "/") + "/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned status %d", domainerrors.ErrExchangeFailed, endpoint, resp.StatusCode)
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domainerrors.ErrExchangeFailed, err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("%w: response carried no access_token", domainerrors.ErrExchangeFailed)
	}

	if e.logger != nil {
		e.logger.Info("token exchanged",
			"event", "token_exchange_ok",
			"module", "identity-access/access-control",
			"layer", "adapter",
			"issuer", idp.Issuer,
			"audience", audience,
		)
	}
	return decoded.AccessToken, nil
}

// PassThroughExchanger returns the subject token unchanged. Local
// authentication mode has no identity provider to exchange against.
type PassThroughExchanger struct{}

func (PassThroughExchanger) Exchange(_ context.Context, _, subjectToken, _ string) (string, error) {
	return subjectToken, nil
}
