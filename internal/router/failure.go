package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/patric-chuzhbe/bookshelf/internal/envelope"
	"github.com/patric-chuzhbe/bookshelf/internal/logger"
	"github.com/patric-chuzhbe/bookshelf/internal/service"
)

const (
	msgInternalServerError = "Internal Server Error"
	msgUserNotFound        = "User not found"
	msgBookNotFound        = "Book not found"
	msgInvalidOwnerID      = "Invalid ownerId — user not found"
	msgNothingToUpdate     = "The information does not exist."
)

// statusError is a failure that knows which HTTP status it should be
// answered with.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string {
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) StatusCode() int {
	return e.status
}

func isErrorStatus(status int) bool {
	return status >= 400 && status <= 599
}

// fail is the last line of defense: it logs err with the request context
// and always writes an error envelope. The status comes from err when it
// carries a valid error status, 500 otherwise.
func fail(res http.ResponseWriter, req *http.Request, err error) {
	logger.Log.Errorw(
		"Unhandled error",
		"request_id", logger.RequestIDFromContext(req.Context()),
		"method", req.Method,
		"uri", req.RequestURI,
		"error", err,
	)

	status := http.StatusInternalServerError
	var withStatus interface{ StatusCode() int }
	if errors.As(err, &withStatus) && isErrorStatus(withStatus.StatusCode()) {
		status = withStatus.StatusCode()
	}

	message := msgInternalServerError
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	envelope.WriteError(res, status, message)
}

// respondWithServiceError answers the failures a handler expects with their
// own status and message and hands everything else to fail.
func respondWithServiceError(res http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		envelope.WriteError(res, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrBookNotFound):
		envelope.WriteError(res, http.StatusNotFound, msgBookNotFound)
	case errors.Is(err, service.ErrInvalidOwnerID):
		envelope.WriteError(res, http.StatusBadRequest, msgInvalidOwnerID)
	case errors.Is(err, service.ErrNothingToUpdate):
		envelope.WriteError(res, http.StatusBadRequest, msgNothingToUpdate)
	default:
		fail(res, req, err)
	}
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeJSON reads the request body into target. An empty body leaves
// target untouched; a malformed one, or one with anything but whitespace
// after the JSON value, yields a 400 failure.
func decodeJSON(req *http.Request, target any) error {
	if req.Body == nil {
		return nil
	}

	decoder := json.NewDecoder(req.Body)
	err := decoder.Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &statusError{status: http.StatusBadRequest, err: err}
	}

	var trailing json.RawMessage
	err = decoder.Decode(&trailing)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		err = errTrailingData
	}

	return &statusError{status: http.StatusBadRequest, err: err}
}

// Recoverer turns a panicking handler into an error envelope, so a request
// always gets an answer.
func Recoverer(next http.Handler) http.Handler {
	middleware := func(res http.ResponseWriter, req *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("%v", recovered)
			}
			logger.Log.Errorw("Recovered from panic", "error", err, "stack", string(debug.Stack()))

			fail(res, req, err)
		}()

		next.ServeHTTP(res, req)
	}

	return http.HandlerFunc(middleware)
}
