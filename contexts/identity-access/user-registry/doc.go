// Package userregistry keeps the registry of platform users.
//
// A user row pairs an identity provider subject with the issuer that
// minted it; the couple is unique. Registration issues an RSA key pair:
// the OpenSSH public half lives on the row, the PEM private half goes
// to the secret store and never touches the relational database.
//
// Layering:
// - domain: user entity, validation rules, errors
// - application: register/update/delete commands, get/list queries,
//   dev identity seeding
// - ports: repository, key issuer, secret store, clock, id generator
// - adapters: sql (gorm), memory, sshkey (RSA), http handlers
package userregistry
