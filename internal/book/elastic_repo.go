package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/olivere/elastic/v7"
)

// listPageSize is the number of hits fetched per scroll round trip.
const listPageSize = 1000

// ElasticRepo stores books as documents in a single Elasticsearch index.
type ElasticRepo struct {
	client  *elastic.Client
	index   string
	timeout time.Duration
}

func NewElasticRepo(client *elastic.Client, index string, timeout time.Duration) *ElasticRepo {
	return &ElasticRepo{client: client, index: index, timeout: timeout}
}

func (r *ElasticRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *ElasticRepo) Create(ctx context.Context, in Input) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.client.Index().
		Index(r.index).
		BodyJson(in).
		Refresh("wait_for").
		Do(timeoutCtx)
	if err != nil {
		return Book{}, fmt.Errorf("index book: %w", err)
	}
	return NewBook(res.Id, in), nil
}

// List scrolls through the whole index, so the result is not capped by the
// search window.
func (r *ElasticRepo) List(ctx context.Context) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	scroll := r.client.Scroll(r.index).
		Query(elastic.NewMatchAllQuery()).
		Size(listPageSize)
	defer func() { _ = scroll.Clear(context.Background()) }()

	out := []Book{}
	for {
		res, err := scroll.Do(timeoutCtx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			if elastic.IsNotFound(err) {
				return []Book{}, nil
			}
			return nil, fmt.Errorf("scroll books: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			b, err := decodeSource(hit.Id, hit.Source)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
}

func (r *ElasticRepo) Update(ctx context.Context, id string, in Input) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if in.IsEmpty() {
		res, err := r.client.Get().Index(r.index).Id(id).Do(timeoutCtx)
		if err != nil {
			if elastic.IsNotFound(err) {
				return Book{}, ErrNotFound
			}
			return Book{}, fmt.Errorf("get book %s: %w", id, err)
		}
		if !res.Found {
			return Book{}, ErrNotFound
		}
		return decodeSource(res.Id, res.Source)
	}

	res, err := r.client.Update().
		Index(r.index).
		Id(id).
		Doc(in).
		FetchSource(true).
		Refresh("wait_for").
		Do(timeoutCtx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("update book %s: %w", id, err)
	}
	if res.GetResult == nil {
		return Book{}, fmt.Errorf("update book %s: response carried no source", id)
	}
	return decodeSource(res.Id, res.GetResult.Source)
}

func (r *ElasticRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.client.Delete().
		Index(r.index).
		Id(id).
		Refresh("wait_for").
		Do(timeoutCtx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	return nil
}

func (r *ElasticRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.client.ClusterHealth().Do(timeoutCtx)
	return err
}

func decodeSource(id string, source json.RawMessage) (Book, error) {
	var in Input
	if len(source) > 0 {
		if err := json.Unmarshal(source, &in); err != nil {
			return Book{}, fmt.Errorf("decode book %s: %w", id, err)
		}
	}
	return NewBook(id, in), nil
}
