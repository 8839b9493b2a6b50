package opahttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
)

// decisionPath is the data API document the policy bundle publishes its
// verdict under.
const decisionPath = "/v1/data/orchestrator/allow"

// Client asks an external policy engine for access decisions. An
// unreachable engine is an error, not a denial, so callers can tell an
// outage apart from policy.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type userInfo struct {
	Issuer string   `json:"iss"`
	Groups []string `json:"groups"`
}

type decisionInput struct {
	UserInfo userInfo `json:"user_info"`
	Path     string   `json:"path"`
	Method   string   `json:"method"`
	HasBody  string   `json:"has_body"`
}

type decisionRequest struct {
	Input decisionInput `json:"input"`
}

type decisionResponse struct {
	Result *bool `json:"result"`
}

func (c *Client) Mode() string { return "opa" }

func (c *Client) Authorize(ctx context.Context, request entities.AccessRequest) (entities.Decision, error) {
	groups := request.Principal.Groups
	if groups == nil {
		groups = []string{}
	}

	payload, err := json.Marshal(decisionRequest{Input: decisionInput{
		UserInfo: userInfo{Issuer: request.Principal.Issuer, Groups: groups},
		Path:     request.Path,
		Method:   request.Method,
		HasBody:  strconv.FormatBool(request.HasBody),
	}})
	if err != nil {
		return entities.Decision{}, fmt.Errorf("marshal decision input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+decisionPath, bytes.NewReader(payload))
	if err != nil {
		return entities.Decision{}, fmt.Errorf("build decision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return entities.Decision{}, fmt.Errorf("%w: %v", domainerrors.ErrPolicyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.Decision{}, fmt.Errorf("%w: status %d", domainerrors.ErrPolicyUnavailable, resp.StatusCode)
	}

	var decoded decisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return entities.Decision{}, fmt.Errorf("%w: decode response: %v", domainerrors.ErrPolicyUnavailable, err)
	}

	// An undefined document means no rule matched; deny.
	if decoded.Result == nil {
		return entities.Decision{Allowed: false, Mode: c.Mode(), Reason: "policy result undefined"}, nil
	}
	if !*decoded.Result {
		return entities.Decision{Allowed: false, Mode: c.Mode(), Reason: "denied by policy"}, nil
	}
	return entities.Decision{Allowed: true, Mode: c.Mode(), Reason: "allowed by policy"}, nil
}

// Health probes the engine's health endpoint; the API health resource
// calls this when the opa mode is active.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("opa health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("opa health: status %d", resp.StatusCode)
	}
	return nil
}
