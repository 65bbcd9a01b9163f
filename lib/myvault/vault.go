package myvault

import (
	"context"

	"github.com/MarcGrol/titanbridge/lib/mystore"
)

const (
	DefaultConnection = "defaultConnection"
)

// Credentials describe one configured ServiceTitan connection. They are
// supplied externally and consumed read-only by the transport.
type Credentials struct {
	Environment  string
	ClientID     string
	ClientSecret string
	TenantID     string
	APIHost      string
	AuthHost     string
}

type VaultReader interface {
	Get(c context.Context, uid string) (Credentials, bool, error)
}

//go:generate mockgen -source=vault.go -package myvault -destination vault_mock.go VaultReadWriter
type VaultReadWriter interface {
	Get(c context.Context, uid string) (Credentials, bool, error)
	Put(c context.Context, uid string, value Credentials) error
}

type vault struct {
	store mystore.Store[Credentials]
}

func New(c context.Context) (*vault, func(), error) {
	store, cleanup, err := mystore.New[Credentials](c)
	if err != nil {
		return nil, nil, err
	}

	return &vault{
		store: store,
	}, cleanup, nil
}

func (v *vault) Get(c context.Context, uid string) (Credentials, bool, error) {
	return v.store.Get(c, uid)
}

func (v *vault) Put(c context.Context, uid string, value Credentials) error {
	return v.store.Put(c, uid, value)
}
