// Package accesscontrol guards every API route of the orchestrator.
//
// Layering:
// - domain: principal/decision entities, access-level rules, errors
// - application: authenticate and authorize use-cases over explicit ports
// - ports: token verifier, authorizer, token exchanger boundaries
// - adapters: JWT verifiers (local HS256, federated OIDC), allow-list,
//   remote OPA client, embedded Rego engine
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
// - The HTTP middleware in internal/platform/httpserver is the only caller.
package accesscontrol
