package ports

import (
	"context"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// KeyIssuer produces the SSH key pair minted at registration.
type KeyIssuer interface {
	Issue() (entities.KeyPair, error)
}

// CallerToken identifies the request on whose behalf secret material
// is written: the bearer token and the issuer that minted it, so the
// store can swap the token for one scoped to its own audience.
type CallerToken struct {
	AccessToken string
	Issuer      string
}

// SecretStore keeps private key material outside the relational store.
type SecretStore interface {
	StoreUserKey(ctx context.Context, caller CallerToken, sub string, privateKeyPEM string) error
	DeleteUserKey(ctx context.Context, caller CallerToken, sub string) error
}

// ListFilter narrows and pages the user listing. Offset/Limit are
// precomputed by the caller; OrderClause is a validated SQL order
// expression such as "created_at DESC".
type ListFilter struct {
	Sub           string
	Name          string
	Email         string
	Issuer        string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Offset        int
	Limit         int
	OrderClause   string
}

// Patch carries the mutable user fields; nil means leave unchanged.
type Patch struct {
	Name  *string
	Email *string
}

type Repository interface {
	Create(ctx context.Context, user entities.User) error
	Get(ctx context.Context, id string) (entities.User, error)
	GetBySubIssuer(ctx context.Context, sub string, issuer string) (entities.User, error)
	List(ctx context.Context, filter ListFilter) ([]entities.User, int64, error)
	Update(ctx context.Context, id string, patch Patch, now time.Time) (entities.User, error)
	Delete(ctx context.Context, id string) error
}
