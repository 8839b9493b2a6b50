// Package templatecatalog keeps the catalog of TOSCA deployment
// templates.
//
// A template's identity is its content: the sha256 of the raw document
// is unique in the catalog, and the descriptive fields (name, version,
// target provider type, definitions version) are derived from the
// document rather than supplied by the caller.
//
// Layering:
// - domain: template entity, content hashing, errors
// - application: create/replace/delete commands, get/list queries
// - ports: repository, TOSCA parser, usage check, clock, id generator
// - adapters: sql (gorm), memory, tosca (yaml), http handlers
package templatecatalog
