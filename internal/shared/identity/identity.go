// Package identity carries the authenticated caller through request
// context so HTTP adapters in any bounded context can read it without
// importing one another.
package identity

import "context"

// Identity is the authenticated caller as established by the access
// control middleware. AccessToken is the raw bearer, kept for
// downstream exchanges (for example the secret store login).
type Identity struct {
	Subject     string
	Issuer      string
	Name        string
	Email       string
	Groups      []string
	AccessToken string
}

// Actor is the audit form "sub@issuer" recorded on created_by and
// updated_by columns.
func (id Identity) Actor() string {
	if id.Subject == "" {
		return ""
	}
	return id.Subject + "@" + id.Issuer
}

type contextKey struct{}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
