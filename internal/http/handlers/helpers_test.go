package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

var testSession = &domain.Session{ID: "s1", AccessToken: "backend-token", Phone: "09123456789", Role: domain.RoleCustomer}

// withSession stands in for the auth middleware
func withSession(s *domain.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		}
		c.Next()
	}
}

func newTestEngine(s *domain.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withSession(s))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
