package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/httpx"
	"bookstore/internal/testutil"
)

func newTestRouter(t *testing.T, repo book.Repository, cfg config.Config) http.Handler {
	t.Helper()

	registry := prometheus.NewRegistry()
	metrics := httpx.NewMetrics()
	registry.MustRegister(metrics)

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	return newRouter(cfg, book.NewService(repo), zap.NewNop(), metrics, registry, done)
}

func TestRouter_Probes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	router := newTestRouter(t, mockRepo, config.Config{})

	w := testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	mockRepo.EXPECT().Ping(gomock.Any()).Return(nil)
	w = testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mockRepo.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))
	w = testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_BookRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	router := newTestRouter(t, mockRepo, config.Config{MaxBodyBytes: 64})

	created := book.Book{ID: "65f000000000000000000001", Title: testutil.Ptr("A")}
	mockRepo.EXPECT().Create(gomock.Any(), book.Input{Title: testutil.Ptr("A")}).Return(created, nil)
	mockRepo.EXPECT().List(gomock.Any()).Return([]book.Book{created}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), created.ID).Return(nil)

	w := testutil.Serve(router, testutil.NewRequest(http.MethodPost, "/books", `{"title":"A"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/books", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.DecodeJSON[[]book.Book](t, w), 1)

	w = testutil.Serve(router, testutil.NewRequest(http.MethodDelete, "/books/"+created.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testutil.Serve(router, testutil.NewRequest(http.MethodPost, "/books", `{"summary":"`+string(make([]byte, 128))+`"}`))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	router := newTestRouter(t, mockRepo, config.Config{})

	mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)
	testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/books", nil))

	w := testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bookstore_http_requests_total{method="GET",route="GET /books",status="200"} 1`)
}

func TestRouter_RateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)
	router := newTestRouter(t, mockRepo, config.Config{RateLimitRPS: 0.001, RateLimitBurst: 1})

	assert.Equal(t, http.StatusOK, testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}

func TestRouter_MetricsCountRejectedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := book.NewMockRepository(ctrl)

	metrics := httpx.NewMetrics()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	cfg := config.Config{MaxBodyBytes: 16, RateLimitRPS: 0.001, RateLimitBurst: 1}
	router := newRouter(cfg, book.NewService(mockRepo), zap.NewNop(), metrics, prometheus.NewRegistry(), done)

	w := testutil.Serve(router, testutil.NewRequest(http.MethodPost, "/books", `{"summary":"far too long for the limit"}`))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = testutil.Serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodPost, "unmatched", "413")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "unmatched", "429")))
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	assert.NoError(t, err)

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestLoadStartup(t *testing.T) {
	t.Setenv("BOOK_STORE", "mongo")
	t.Setenv("LOG_LEVEL", "warn")
	cfg, logger, err := loadStartup()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, config.StoreMongo, cfg.Store)

	t.Setenv("BOOK_STORE", "postgres")
	_, _, err = loadStartup()
	assert.ErrorContains(t, err, "config:")

	t.Setenv("BOOK_STORE", "mongo")
	t.Setenv("LOG_LEVEL", "loud")
	_, _, err = loadStartup()
	assert.ErrorContains(t, err, "logger:")
}
