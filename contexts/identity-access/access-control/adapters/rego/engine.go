package regoadapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
)

const decisionQuery = "data.orchestrator.allow"

// Engine evaluates the access policy in-process. It compiles the same
// Rego document an external engine would serve, so decisions are
// identical between the opa and rego authorization modes.
type Engine struct {
	policyPath string
	logger     *slog.Logger

	mu    sync.RWMutex
	query rego.PreparedEvalQuery
}

func NewEngine(ctx context.Context, policyPath string, logger *slog.Logger) (*Engine, error) {
	engine := &Engine{policyPath: policyPath, logger: logger}
	if err := engine.load(ctx); err != nil {
		return nil, err
	}
	return engine, nil
}

func (e *Engine) load(ctx context.Context) error {
	source, err := os.ReadFile(e.policyPath)
	if err != nil {
		return fmt.Errorf("read policy %s: %w", e.policyPath, err)
	}

	prepared, err := rego.New(
		rego.Query(decisionQuery),
		rego.Module(filepath.Base(e.policyPath), string(source)),
	).PrepareForEval(ctx)
	if err != nil {
		return fmt.Errorf("compile policy %s: %w", e.policyPath, err)
	}

	e.mu.Lock()
	e.query = prepared
	e.mu.Unlock()
	return nil
}

// Watch recompiles the policy whenever the file changes, until ctx is
// done. A broken edit keeps the previous compiled policy active.
func (e *Engine) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("policy watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(e.policyPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(e.policyPath), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(e.policyPath) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := e.load(context.Background()); err != nil {
					if e.logger != nil {
						e.logger.Error("policy reload failed",
							"event", "policy_reload_failed",
							"module", "identity-access/access-control",
							"layer", "adapter",
							"path", e.policyPath,
							"error", err.Error(),
						)
					}
					continue
				}
				if e.logger != nil {
					e.logger.Info("policy reloaded",
						"event", "policy_reloaded",
						"module", "identity-access/access-control",
						"layer", "adapter",
						"path", e.policyPath,
					)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

func (e *Engine) Mode() string { return "rego" }

func (e *Engine) Authorize(ctx context.Context, request entities.AccessRequest) (entities.Decision, error) {
	groups := request.Principal.Groups
	if groups == nil {
		groups = []string{}
	}

	input := map[string]any{
		"user_info": map[string]any{
			"iss":    request.Principal.Issuer,
			"groups": groups,
		},
		"path":     request.Path,
		"method":   request.Method,
		"has_body": strconv.FormatBool(request.HasBody),
	}

	e.mu.RLock()
	query := e.query
	e.mu.RUnlock()

	results, err := query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return entities.Decision{}, fmt.Errorf("%w: eval: %v", domainerrors.ErrPolicyUnavailable, err)
	}

	if !results.Allowed() {
		return entities.Decision{Allowed: false, Mode: e.Mode(), Reason: "denied by policy"}, nil
	}
	return entities.Decision{Allowed: true, Mode: e.Mode(), Reason: "allowed by policy"}, nil
}
