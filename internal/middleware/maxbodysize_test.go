package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/actorvote/internal/middleware"
)

// bodyReadingHandler reads the whole body like a JSON-decoding handler and
// answers 413 if the read fails.
var bodyReadingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, err := io.ReadAll(r.Body); err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 100

	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1 means unknown (chunked)
		want          int
	}{
		{name: "small body passes", size: 50, contentLength: 50, want: http.StatusOK},
		{name: "exact limit passes", size: limit, contentLength: limit, want: http.StatusOK},
		{name: "declared length over limit", size: 200, contentLength: 200, want: http.StatusRequestEntityTooLarge},
		{name: "streamed body over limit", size: 200, contentLength: -1, want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(bodyReadingHandler)

			req := httptest.NewRequest(http.MethodPost, "/actors", strings.NewReader(strings.Repeat("x", tt.size)))
			req.ContentLength = tt.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
