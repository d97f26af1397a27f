package book

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	book, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, "create book", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, book)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list books", err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	book, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Status(w, http.StatusNotFound)
			return
		}
		h.internalError(w, r, "update book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Status(w, http.StatusNotFound)
			return
		}
		h.internalError(w, r, "delete book", err)
		return
	}
	httpx.Status(w, http.StatusNoContent)
}

// decodeInput reads the JSON body. A missing body is an empty Input.
func (h *HTTPHandler) decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var in Input
	if r.Body == nil {
		return in, true
	}

	err := json.NewDecoder(r.Body).Decode(&in)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return in, true
	case isMaxBytesError(err):
		httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	default:
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object")
	}
	return Input{}, false
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed",
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.Error(err),
	)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
