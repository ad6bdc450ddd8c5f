package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "test-id-123", FromContext(WithRequestID(context.Background(), "test-id-123")))
	assert.Equal(t, "", FromContext(context.Background()))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		incoming   string
		expectSame bool
	}{
		{name: "reuses existing id", incoming: "existing-request-id-456", expectSame: true},
		{name: "generates when absent", incoming: "", expectSame: false},
		{name: "rejects ids with spaces", incoming: "bad id", expectSame: false},
		{name: "rejects overlong ids", incoming: strings.Repeat("a", 129), expectSame: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/sentimentAnalyzer", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))
			if tt.expectSame {
				assert.Equal(t, tt.incoming, captured)
				return
			}
			_, err := uuid.Parse(captured)
			assert.NoError(t, err, "generated ID should be a valid UUID")
		})
	}
}
