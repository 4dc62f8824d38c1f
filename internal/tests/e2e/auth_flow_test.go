package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "09123456789"

// New customer: phone -> code -> signup -> session, then the session works.
func TestNewCustomerSignupFlow(t *testing.T) {
	s := newStack(t)

	res := s.do(http.MethodPost, "/auth/flows", "", nil)
	require.Equal(t, http.StatusCreated, res.Status)
	flowID := res.data()["flow_id"].(string)
	assert.Equal(t, "phone", res.data()["step"])

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/phone", "", map[string]string{"phone": testPhone})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "otp", res.data()["step"])
	assert.Equal(t, float64(60), res.data()["resend_in"])
	assert.Equal(t, false, res.data()["can_resend"])

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/verify", "", map[string]string{"code": validCode})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "signup", res.data()["step"])
	assert.NotContains(t, res.data(), "session")
	assert.Zero(t, s.backend.count("POST /auth/login"), "a new customer logs in only after signup")

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/signup", "", map[string]string{"firstName": "علی"})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "done", res.data()["step"])

	sess := res.data()["session"].(map[string]interface{})
	assert.Equal(t, "/", sess["redirect_to"])
	assert.Equal(t, "customer", sess["role"])
	token := sess["token"].(string)
	require.NotEmpty(t, token)

	name, ok := s.backend.firstName(testPhone)
	assert.True(t, ok)
	assert.Equal(t, "علی", name)
	assert.Equal(t, 1, s.backend.count("POST /auth/login"))

	// the backend access token stays on the server
	assert.NotContains(t, token, "access-"+testPhone)

	res = s.do(http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(180000), res.data()["total"])

	// a finished flow is removed and cannot be replayed
	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/verify", "", map[string]string{"code": validCode})
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.False(t, s.redis.Exists("otpflow:"+flowID))
}

func TestExistingCustomerLogsInAtVerify(t *testing.T) {
	s := newStack(t)
	s.backend.register(testPhone, "مریم")

	token := s.login(testPhone)

	assert.Zero(t, s.backend.count("POST /auth/signup"))
	res := s.do(http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestFlowValidationAndErrors(t *testing.T) {
	s := newStack(t)
	flowID := s.do(http.MethodPost, "/auth/flows", "", nil).data()["flow_id"].(string)

	res := s.do(http.MethodPost, "/auth/flows/"+flowID+"/phone", "", map[string]string{"phone": "0912345"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "phone", res.Body["field"])
	assert.Zero(t, s.backend.count("POST /auth/otp/send"), "short phones never reach the backend")

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/phone", "", map[string]string{"phone": testPhone})
	require.Equal(t, http.StatusOK, res.Status)

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/verify", "", map[string]string{"code": "12a4"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "code", res.Body["field"])

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/verify", "", map[string]string{"code": "9999"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "کد وارد شده صحیح نیست", res.Body["error"])

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/resend", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, res.Status)
	assert.Equal(t, 1, s.backend.count("POST /auth/otp/send"))

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/back", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "phone", res.data()["step"])

	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/phone", "", map[string]string{"phone": testPhone})
	require.Equal(t, http.StatusOK, res.Status)
	res = s.do(http.MethodPost, "/auth/flows/"+flowID+"/reset", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "phone", res.data()["step"])

	res = s.do(http.MethodGet, "/auth/flows/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestFlowExpiresInRedis(t *testing.T) {
	s := newStack(t)
	flowID := s.do(http.MethodPost, "/auth/flows", "", nil).data()["flow_id"].(string)

	s.redis.FastForward(16 * time.Minute)

	res := s.do(http.MethodGet, "/auth/flows/"+flowID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestLogoutRevokesSession(t *testing.T) {
	s := newStack(t)
	token := s.login(testPhone)

	res := s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.Status)

	res = s.do(http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}
