package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	deploymentservice "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service"
	templatecatalog "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog"
	accesscontrol "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control"
	accessqueries "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/application/queries"
	accessentities "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	accesserrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
	userregistry "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry"
	_ "github.com/infn-datacloud/orchestrator/internal/platform/httpserver/docs"
	"github.com/infn-datacloud/orchestrator/internal/platform/telemetry"
	"github.com/infn-datacloud/orchestrator/internal/shared/identity"
	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type Server struct {
	mux         *http.ServeMux
	handler     http.Handler
	logger      *slog.Logger
	addr        string
	apiPrefix   string
	users       userregistry.Module
	templates   templatecatalog.Module
	deployments deploymentservice.Module
	access      accesscontrol.Module
	metrics     *telemetry.Metrics
	health      HealthProbes
}

// Options carries everything the server needs at construction time.
type Options struct {
	Addr        string
	APIPrefix   string
	Users       userregistry.Module
	Templates   templatecatalog.Module
	Deployments deploymentservice.Module
	Access      accesscontrol.Module
	Metrics     *telemetry.Metrics
	Health      HealthProbes
	Logger      *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8000"
	}
	prefix := strings.TrimSuffix(opts.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		apiPrefix:   prefix,
		users:       opts.Users,
		templates:   opts.Templates,
		deployments: opts.Deployments,
		access:      opts.Access,
		metrics:     opts.Metrics,
		health:      opts.Health,
	}
	s.registerRoutes()

	// otelhttp sits at the outermost layer so the span covers the full
	// request, middleware included.
	s.handler = otelhttp.NewHandler(s.observe(s.secure(s.mux)), "orchestrator-http")
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

// Handler exposes the full middleware-wrapped handler so the runtime
// can own the http.Server and drive graceful shutdown.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) registerRoutes() {
	p := s.apiPrefix

	// identity-access/user-registry
	s.mux.HandleFunc("POST "+p+"/users", s.handleCreateUser)
	s.mux.HandleFunc("GET "+p+"/users", s.handleListUsers)
	s.mux.HandleFunc("OPTIONS "+p+"/users", s.handleOptionsUsers)
	s.mux.HandleFunc("GET "+p+"/users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("HEAD "+p+"/users/{user_id}", s.handleHeadUser)
	s.mux.HandleFunc("PATCH "+p+"/users/{user_id}", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE "+p+"/users/{user_id}", s.handleDeleteUser)

	// deployment-lifecycle/template-catalog
	s.mux.HandleFunc("POST "+p+"/templates", s.handleCreateTemplate)
	s.mux.HandleFunc("GET "+p+"/templates", s.handleListTemplates)
	s.mux.HandleFunc("OPTIONS "+p+"/templates", s.handleOptionsTemplates)
	s.mux.HandleFunc("GET "+p+"/templates/{template_id}", s.handleGetTemplate)
	s.mux.HandleFunc("HEAD "+p+"/templates/{template_id}", s.handleHeadTemplate)
	s.mux.HandleFunc("PATCH "+p+"/templates/{template_id}", s.handleReplaceTemplate)
	s.mux.HandleFunc("DELETE "+p+"/templates/{template_id}", s.handleDeleteTemplate)

	// deployment-lifecycle/deployment-service
	s.mux.HandleFunc("POST "+p+"/deployments", s.handleCreateDeployment)
	s.mux.HandleFunc("GET "+p+"/deployments", s.handleListDeployments)
	s.mux.HandleFunc("OPTIONS "+p+"/deployments", s.handleOptionsDeployments)
	s.mux.HandleFunc("GET "+p+"/deployments/{deployment_id}", s.handleGetDeployment)
	s.mux.HandleFunc("HEAD "+p+"/deployments/{deployment_id}", s.handleHeadDeployment)
	s.mux.HandleFunc("PATCH "+p+"/deployments/{deployment_id}", s.handleUpdateDeployment)
	s.mux.HandleFunc("DELETE "+p+"/deployments/{deployment_id}", s.handleDeleteDeployment)
	s.mux.HandleFunc("POST "+p+"/deployments/{deployment_id}/resources", s.handleCreateResource)
	s.mux.HandleFunc("GET "+p+"/deployments/{deployment_id}/resources", s.handleListResources)
	s.mux.HandleFunc("GET "+p+"/deployments/{deployment_id}/resources/{resource_id}", s.handleGetResource)
	s.mux.HandleFunc("HEAD "+p+"/deployments/{deployment_id}/resources/{resource_id}", s.handleHeadResource)
	s.mux.HandleFunc("PATCH "+p+"/deployments/{deployment_id}/resources/{resource_id}", s.handleUpdateResource)
	s.mux.HandleFunc("DELETE "+p+"/deployments/{deployment_id}/resources/{resource_id}", s.handleDeleteResource)

	// public surface
	s.mux.HandleFunc("GET "+p+"/health", s.handleHealth)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	s.mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// observe stamps a request id, logs the outcome and feeds the
// Prometheus request collectors.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := r.URL.Path
		if _, pattern := s.mux.Handler(r); pattern != "" {
			route = pattern
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, recorder.status, elapsed)
		}
		s.logger.Info("request handled",
			"event", "http_request",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"elapsed_ms", elapsed.Milliseconds(),
		)
	})
}

// secure authenticates the bearer token and asks the access-control
// module for an authorization decision. Paths outside the API prefix
// and the health resource stay public.
func (s *Server) secure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.publicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusForbidden, "not_authenticated", err.Error())
			return
		}

		principal, err := s.access.Authenticate.Execute(r.Context(), accessqueries.AuthenticateQuery{BearerToken: token})
		if err != nil {
			writeError(w, http.StatusForbidden, "not_authenticated", err.Error())
			return
		}

		decision, err := s.access.Authorize.Execute(r.Context(), accessentities.AccessRequest{
			Principal: principal,
			Method:    r.Method,
			Path:      r.URL.Path,
			HasBody:   r.ContentLength != 0,
		})
		if err != nil {
			if errors.Is(err, accesserrors.ErrPolicyUnavailable) {
				writeError(w, http.StatusInternalServerError, "policy_unavailable", "authorization backend unavailable")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		if !decision.Allowed {
			writeError(w, http.StatusUnauthorized, "not_authorized", "request denied by access policy")
			return
		}

		ctx := identity.NewContext(r.Context(), identity.Identity{
			Subject:     principal.Subject,
			Issuer:      principal.Issuer,
			Name:        principal.Name,
			Email:       principal.Email,
			Groups:      principal.Groups,
			AccessToken: token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) publicPath(path string) bool {
	if path == s.apiPrefix+"/health" {
		return true
	}
	return !strings.HasPrefix(path, s.apiPrefix+"/")
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", accesserrors.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", accesserrors.ErrTokenInvalid
	}
	return strings.TrimSpace(parts[1]), nil
}

func callerFrom(r *http.Request) identity.Identity {
	caller, _ := identity.FromContext(r.Context())
	return caller
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type errorWriter func(w http.ResponseWriter, status int, code string, message string)

type errorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Status: status, Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, writeErr errorWriter) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return false
	}
	return true
}

// parseListQuery validates pagination and resolves the sort expression
// against the endpoint's sortable columns.
func (s *Server) parseListQuery(w http.ResponseWriter, r *http.Request, writeErr errorWriter, fallback string, allowed ...string) (pagination.Query, string, bool) {
	q, err := pagination.Parse(r.URL.Query())
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_query", err.Error())
		return pagination.Query{}, "", false
	}
	order, err := q.Order(fallback, allowed...)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_query", err.Error())
		return pagination.Query{}, "", false
	}
	return q, order.Clause(), true
}

func parseTimeParam(values url.Values, name string) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC 3339 timestamp, got %q", name, raw)
	}
	return &parsed, nil
}

func parseIntParam(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &value, nil
}
