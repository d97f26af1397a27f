package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// Status writes a bare status line with an empty body.
func Status(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message string) {
	resp := ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
		},
	}
	if requestID := RequestIDFrom(r); requestID != "" {
		resp.Meta = map[string]any{"request_id": requestID}
	}
	JSON(w, statusCode, resp)
}
