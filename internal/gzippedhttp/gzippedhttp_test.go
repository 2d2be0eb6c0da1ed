package gzippedhttp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipString(t *testing.T, input string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	_, err := gzipWriter.Write([]byte(input))
	require.NoError(t, err)
	require.NoError(t, gzipWriter.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, input []byte) string {
	t.Helper()
	reader, err := gzip.NewReader(bytes.NewReader(input))
	require.NoError(t, err)
	defer reader.Close()
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(out)
}

func TestUngzipJSONRequest(t *testing.T) {
	var seen string
	handler := UngzipJSONRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(body)
	}))

	request := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(gzipString(t, `{"name":"Ann"}`)))
	request.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `{"name":"Ann"}`, seen)
}

func TestUngzipJSONRequestBrokenStream(t *testing.T) {
	called := false
	var readErr error
	handler := UngzipJSONRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, readErr = io.ReadAll(r.Body)
		assert.NoError(t, r.Body.Close())
	}))

	request := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("plain text"))
	request.Header.Set("Content-Encoding", "gzip")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.True(t, called, "A broken gzip body should still reach the handler")
	assert.ErrorIs(t, readErr, gzip.ErrHeader)
}

func TestGzipResponse(t *testing.T) {
	testCases := []struct {
		name           string
		acceptEncoding string
		status         int
		body           string
		wantGzip       bool
	}{
		{name: "ok_with_gzip", acceptEncoding: "gzip, deflate", status: http.StatusOK, body: `{"status":"success"}`, wantGzip: true},
		{name: "created_with_gzip", acceptEncoding: "gzip", status: http.StatusCreated, body: `{"status":"success"}`, wantGzip: true},
		{name: "ok_without_gzip", acceptEncoding: "", status: http.StatusOK, body: `{"status":"success"}`},
		{name: "not_found_stays_plain", acceptEncoding: "gzip", status: http.StatusNotFound, body: `{"status":"error"}`},
		{name: "no_content_stays_empty", acceptEncoding: "gzip", status: http.StatusNoContent},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := GzipResponse(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				if testCase.body != "" {
					_, _ = w.Write([]byte(testCase.body))
				}
			}))

			request := httptest.NewRequest(http.MethodGet, "/users", nil)
			if testCase.acceptEncoding != "" {
				request.Header.Set("Accept-Encoding", testCase.acceptEncoding)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.status, recorder.Code)
			if testCase.wantGzip {
				assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
				assert.Equal(t, testCase.body, gunzip(t, recorder.Body.Bytes()))
				return
			}
			assert.Empty(t, recorder.Header().Get("Content-Encoding"))
			assert.Equal(t, testCase.body, recorder.Body.String())
		})
	}
}
