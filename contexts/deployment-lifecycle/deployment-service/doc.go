// Package deploymentservice keeps the ledger of deployments and the
// virtual resources materialized for them.
//
// A deployment references a catalog template, carries the scheduling
// knobs handed to the provisioning workers (retries, provider caps,
// timeouts) and owns its resources. Creating a deployment persists the
// row and an outbox message in one transaction; a relay worker drains
// the outbox onto the message bus, so a creation request is never lost
// and never published without its row.
//
// Layering:
// - domain: deployment and resource entities, knob validation, errors
// - application: create/update/delete commands for both entities,
//   get/list queries, the outbox relay worker
// - ports: repositories, template and owner-key sources, publisher,
//   clock, id generator
// - adapters: sql (gorm, transactional outbox), memory, http handlers
package deploymentservice
