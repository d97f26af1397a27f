package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// document is the stored shape of a book in MongoDB.
type document struct {
	ID      primitive.ObjectID `bson:"_id"`
	Title   *string            `bson:"title,omitempty"`
	Author  *string            `bson:"author,omitempty"`
	Summary *string            `bson:"summary,omitempty"`
	Price   *float64           `bson:"price,omitempty"`
}

func (d document) book() Book {
	return Book{
		ID:      d.ID.Hex(),
		Title:   d.Title,
		Author:  d.Author,
		Summary: d.Summary,
		Price:   d.Price,
	}
}

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(db *mongo.Database, collection string, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: db.Collection(collection), timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Create(ctx context.Context, in Input) (Book, error) {
	doc := struct {
		ID    primitive.ObjectID `bson:"_id"`
		Input `bson:",inline"`
	}{ID: primitive.NewObjectID(), Input: in}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(timeoutCtx, doc); err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return NewBook(doc.ID.Hex(), in), nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(timeoutCtx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}

	var docs []document
	if err := cur.All(timeoutCtx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	out := make([]Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.book())
	}
	return out, nil
}

func (r *MongoRepo) Update(ctx context.Context, id string, in Input) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrNotFound
	}
	filter := bson.D{{Key: "_id", Value: oid}}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var res *mongo.SingleResult
	if in.IsEmpty() {
		// $set with no fields is rejected by the server
		res = r.coll.FindOne(timeoutCtx, filter)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		res = r.coll.FindOneAndUpdate(timeoutCtx, filter, bson.D{{Key: "$set", Value: in}}, opts)
	}

	var d document
	if err := res.Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("update book %s: %w", id, err)
	}
	return d.book(), nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.DeleteOne(timeoutCtx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Database().Client().Ping(timeoutCtx, readpref.Primary())
}
