// Package logger provides structured logging functionality
// using the Uber zap logging library, and the HTTP middleware that
// records every inbound request.
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// UnserializableBody replaces a request body that cannot be logged as JSON.
const UnserializableBody = "[unserializable body]"

type requestIDKey struct{}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

// Log is a global SugaredLogger instance from the zap logging library.
// It discards everything until Init is called.
var Log = zap.NewNop().Sugar()

// Write implements the io.Writer interface for logger middleware.
// It writes log data to the underlying logger, capturing response size.
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader writes the HTTP status code to the response and records it.
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	if r.responseData.status == 0 {
		r.responseData.status = statusCode
	}
}

// Init initializes the global logger configuration.
// It sets the output destination and global log level.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes any buffered log entries to the output.
// It should be called when shutting down to ensure all logs are written.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}

	return nil
}

// RequestIDFromContext returns the id WithLoggingHTTPMiddleware assigned to
// the request, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// serializeBody renders a JSON body on a single line. It never fails: an
// empty body is logged as {} and anything else that is not JSON as
// UnserializableBody.
func serializeBody(raw []byte, readErr error) string {
	if readErr != nil {
		return UnserializableBody
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}"
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return UnserializableBody
	}

	return compacted.String()
}

// failedReader returns err from every read.
type failedReader struct {
	err error
}

func (f failedReader) Read([]byte) (int, error) {
	return 0, f.err
}

// readBody drains the request body and replaces it with an in-memory copy
// so handlers can read it again. If reading failed, the copy fails the same
// way after the bytes that were read.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	raw, err := io.ReadAll(r.Body)
	_ = r.Body.Close()

	var replay io.Reader = bytes.NewReader(raw)
	if err != nil {
		replay = io.MultiReader(replay, failedReader{err: err})
	}
	r.Body = io.NopCloser(replay)

	return raw, err
}

// WithLoggingHTTPMiddleware wraps an http.Handler with structured logging.
// Before the handler runs it logs the method, the original URI with its
// query string and the request body; afterwards it logs status, size and
// duration.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	logFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		uri := r.RequestURI
		if uri == "" {
			uri = r.URL.RequestURI()
		}

		raw, err := readBody(r)
		Log.Infow(
			"request",
			"time", start.UTC().Format(time.RFC3339Nano),
			"request_id", requestID,
			"method", r.Method,
			"uri", uri,
			"body", serializeBody(raw, err),
		)

		responseData := &responseData{
			status: 0,
			size:   0,
		}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		h.ServeHTTP(&lw, r)

		duration := time.Since(start)

		Log.Infow(
			"response",
			"request_id", requestID,
			"uri", uri,
			"method", r.Method,
			"status", responseData.status,
			"duration", duration,
			"size", responseData.size,
		)
	}

	return http.HandlerFunc(logFn)
}
