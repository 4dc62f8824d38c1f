package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/urmu/storefront/internal/app"
	testconfig "github.com/urmu/storefront/internal/tests/config"
)

// stack is one storefront wired to a fake backend, miniredis and an
// in-memory sqlite ledger
type stack struct {
	t         *testing.T
	container *app.Container
	router    *gin.Engine
	backend   *fakeBackend
	redis     *miniredis.Miniredis
	logs      *observer.ObservedLogs
}

func newStack(t *testing.T) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend(t)
	mr := miniredis.RunT(t)
	cfg := testconfig.LoadTestConfig(t, backend.URL(), mr.Addr())

	core, logs := observer.New(zapcore.InfoLevel)
	c, err := app.NewContainer(context.Background(), cfg, zap.New(core))
	if err != nil {
		t.Fatalf("Failed to build container: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if err := c.Casbin.SeedDefaults(); err != nil {
		t.Fatalf("Failed to seed policies: %v", err)
	}

	return &stack{t: t, container: c, router: c.Router(), backend: backend, redis: mr, logs: logs}
}

type response struct {
	Status int
	Body   map[string]interface{}
}

func (r response) data() map[string]interface{} {
	d, _ := r.Body["data"].(map[string]interface{})
	return d
}

func (s *stack) do(method, path, token string, body interface{}) response {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	res := response{Status: w.Code}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" &&
		bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		if err := json.Unmarshal(w.Body.Bytes(), &res.Body); err != nil {
			s.t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return res
}

// login runs the OTP wizard for phone and returns the session token
func (s *stack) login(phone string) string {
	s.t.Helper()
	res := s.do(http.MethodPost, "/auth/flows", "", nil)
	if res.Status != http.StatusCreated {
		s.t.Fatalf("start flow: status %d", res.Status)
	}
	flowID := res.data()["flow_id"].(string)

	if res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/phone", "", map[string]string{"phone": phone}); res.Status != http.StatusOK {
		s.t.Fatalf("submit phone: status %d %v", res.Status, res.Body)
	}
	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/verify", "", map[string]string{"code": validCode})
	if res.Status != http.StatusOK {
		s.t.Fatalf("verify: status %d %v", res.Status, res.Body)
	}
	if res.data()["step"] == "signup" {
		res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/signup", "", map[string]string{"firstName": "علی"})
		if res.Status != http.StatusOK {
			s.t.Fatalf("signup: status %d %v", res.Status, res.Body)
		}
	}
	sess, ok := res.data()["session"].(map[string]interface{})
	if !ok {
		s.t.Fatalf("flow finished without a session: %v", res.Body)
	}
	return sess["token"].(string)
}
