package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())

	router.GET("/test", func(c *gin.Context) {
		if capture != nil {
			*capture = GetRequestID(c)
		}
		c.String(http.StatusOK, "OK")
	})
	return router
}

func TestRequestID_SetsHeader(t *testing.T) {
	router := newRequestIDRouter(nil)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("Expected X-Request-ID header to be set")
	}
	// Generated IDs are UUIDs (8-4-4-4-12)
	if len(requestID) != 36 {
		t.Errorf("Expected UUID format (36 chars), got '%s' (%d chars)", requestID, len(requestID))
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	router := newRequestIDRouter(nil)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		requestID := w.Header().Get("X-Request-ID")
		if seen[requestID] {
			t.Errorf("Duplicate request ID: %s", requestID)
		}
		seen[requestID] = true
	}
}

func TestRequestID_UsesProvidedID(t *testing.T) {
	var captured string
	router := newRequestIDRouter(&captured)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-id-42" {
		t.Errorf("Expected request ID 'upstream-id-42', got '%s'", got)
	}
	if captured != "upstream-id-42" {
		t.Errorf("Expected context request ID 'upstream-id-42', got '%s'", captured)
	}
}

func TestGetRequestID_NoMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var captured string
	router.GET("/test", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if captured != "" {
		t.Errorf("Expected empty request ID without middleware, got '%s'", captured)
	}
}
