// Package store opens the document store selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore/internal/book"
	"bookstore/internal/config"
)

// CloseFunc releases the store client.
type CloseFunc func(ctx context.Context) error

// Open connects to the configured store and verifies it is reachable.
func Open(ctx context.Context, cfg config.Config) (book.Repository, CloseFunc, error) {
	var (
		repo    book.Repository
		closeFn CloseFunc
	)

	switch cfg.Store {
	case config.StoreMongo:
		client, err := connectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo = book.NewMongoRepo(client.Database(cfg.MongoDatabase), cfg.MongoCollection, cfg.DBTimeout)
		closeFn = client.Disconnect

	case config.StoreElastic:
		client, err := connectElastic(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo = book.NewElasticRepo(client, cfg.ElasticIndex, cfg.DBTimeout)
		closeFn = stopElastic(client)

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	if err := repo.Ping(ctx); err != nil {
		_ = closeFn(ctx)
		return nil, nil, fmt.Errorf("ping %s store: %w", cfg.Store, err)
	}
	return repo, closeFn, nil
}

func connectMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo (%s): %w", config.RedactURI(cfg.MongoURI), err)
	}
	return client, nil
}

func connectElastic(cfg config.Config) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(cfg.ElasticURL),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("connect elastic (%s): %w", config.RedactURI(cfg.ElasticURL), err)
	}
	return client, nil
}

func stopElastic(client *elastic.Client) CloseFunc {
	return func(context.Context) error {
		client.Stop()
		return nil
	}
}
