package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/olivere/elastic/v7"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bookstore/internal/config"
)

// mongoNamespaceExists is the server error code for creating an existing collection.
const mongoNamespaceExists = 48

// bookMapping is the Elasticsearch mapping for the books index.
const bookMapping = `{
	"mappings": {
		"properties": {
			"title":   {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"author":  {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"summary": {"type": "text"},
			"price":   {"type": "double"}
		}
	}
}`

// Status describes the book collection or index.
type Status struct {
	Name   string
	Exists bool
	Count  int64
}

// Migrator creates and drops the collection or index holding books.
type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Status(ctx context.Context) (Status, error)
}

// OpenMigrator connects to the configured store and returns its migrator.
func OpenMigrator(ctx context.Context, cfg config.Config) (Migrator, CloseFunc, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, err := connectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		m := &mongoMigrator{db: client.Database(cfg.MongoDatabase), name: cfg.MongoCollection}
		return m, client.Disconnect, nil

	case config.StoreElastic:
		client, err := connectElastic(cfg)
		if err != nil {
			return nil, nil, err
		}
		return &elasticMigrator{client: client, index: cfg.ElasticIndex}, stopElastic(client), nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

type mongoMigrator struct {
	db   *mongo.Database
	name string
}

func (m *mongoMigrator) Up(ctx context.Context) error {
	err := m.db.CreateCollection(ctx, m.name)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == mongoNamespaceExists {
		return nil
	}
	return err
}

func (m *mongoMigrator) Down(ctx context.Context) error {
	return m.db.Collection(m.name).Drop(ctx)
}

func (m *mongoMigrator) Status(ctx context.Context) (Status, error) {
	st := Status{Name: m.db.Name() + "." + m.name}

	names, err := m.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: m.name}})
	if err != nil {
		return st, err
	}
	if len(names) == 0 {
		return st, nil
	}
	st.Exists = true

	st.Count, err = m.db.Collection(m.name).EstimatedDocumentCount(ctx)
	return st, err
}

type elasticMigrator struct {
	client *elastic.Client
	index  string
}

func (m *elasticMigrator) Up(ctx context.Context) error {
	exists, err := m.client.IndexExists(m.index).Do(ctx)
	if err != nil || exists {
		return err
	}
	_, err = m.client.CreateIndex(m.index).BodyString(bookMapping).Do(ctx)
	return err
}

func (m *elasticMigrator) Down(ctx context.Context) error {
	_, err := m.client.DeleteIndex(m.index).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

func (m *elasticMigrator) Status(ctx context.Context) (Status, error) {
	st := Status{Name: m.index}

	exists, err := m.client.IndexExists(m.index).Do(ctx)
	if err != nil || !exists {
		return st, err
	}
	st.Exists = true

	st.Count, err = m.client.Count(m.index).Do(ctx)
	return st, err
}
