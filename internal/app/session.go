// Package app wires the database client, repositories and services into the
// session object the CLI drives.
package app

import (
	"context"

	"github.com/angelmondragon/bikewish/internal/catalog"
	"github.com/angelmondragon/bikewish/internal/items"
	"github.com/angelmondragon/bikewish/internal/wishlists"
	"github.com/angelmondragon/bikewish/pkg/config"
	"github.com/angelmondragon/bikewish/pkg/db"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/angelmondragon/bikewish/pkg/migrate"
	"go.uber.org/multierr"
)

// Session owns the process's database client and the services built on it.
// It is created once at startup and handed to every operation.
type Session struct {
	client *db.Client

	Catalog   catalog.Service
	Wishlists wishlists.Service
	Items     items.Service
}

// Open connects to the database, applies dev migrations when enabled and
// wires the services.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Session, error) {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, err
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		return nil, multierr.Append(err, client.Close())
	}

	session, err := New(client, logg)
	if err != nil {
		return nil, multierr.Append(err, client.Close())
	}
	return session, nil
}

// New wires services over an existing client.
func New(client *db.Client, logg *logger.Logger) (*Session, error) {
	conn := client.DB()
	catalogRepo := catalog.NewRepository(conn)
	wishlistRepo := wishlists.NewRepository(conn)

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo})
	if err != nil {
		return nil, err
	}

	wishlistSvc, err := wishlists.NewService(wishlists.ServiceParams{
		WishlistRepo: wishlistRepo,
		Tx:           client,
		Logger:       logg,
	})
	if err != nil {
		return nil, err
	}

	itemSvc, err := items.NewService(items.ServiceParams{
		ItemRepo:     items.NewRepository(conn),
		WishlistRepo: wishlistRepo,
		CatalogRepo:  catalogRepo,
		Tx:           client,
		Logger:       logg,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		client:    client,
		Catalog:   catalogSvc,
		Wishlists: wishlistSvc,
		Items:     itemSvc,
	}, nil
}

// Ping checks that the database is still reachable.
func (s *Session) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases the database connection.
func (s *Session) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
