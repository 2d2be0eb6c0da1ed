// Package envelope builds the uniform JSON body every response carries:
// either {"status":"success","data":...} or
// {"status":"error","error":{"code":...,"message":...}}.
package envelope

import (
	"encoding/json"
	"net/http"

	"github.com/patric-chuzhbe/bookshelf/internal/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the top-level body. Exactly one of Data and Error is set.
type Response struct {
	Status string       `json:"status"`
	Data   any          `json:"data,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Success(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

// Error builds an error body. The HTTP status is chosen by the caller; by
// convention it equals code.
func Error(code int, message string) Response {
	return Response{
		Status: StatusError,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response body", "status", status, "error", err)
	}
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Success(data))
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Error(status, message))
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
