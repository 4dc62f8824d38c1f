package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const validCode = "1234"

// fakeBackend is an in-process stand-in for the remote storefront API
type fakeBackend struct {
	server *httptest.Server

	mu           sync.Mutex
	customers    map[string]string // phone -> first name
	calls        []string
	failPayments bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{customers: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/otp/send", b.sendOTP)
	mux.HandleFunc("POST /auth/otp/verify", b.verifyOTP)
	mux.HandleFunc("POST /auth/signup", b.signup)
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("GET /users/me", b.profile)
	mux.HandleFunc("GET /products", b.products)
	mux.HandleFunc("GET /cart", b.cart)
	mux.HandleFunc("POST /orders", b.createOrder)
	mux.HandleFunc("POST /payments", b.createPayment)

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) URL() string { return b.server.URL }

func (b *fakeBackend) register(phone, firstName string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customers[phone] = firstName
}

func (b *fakeBackend) firstName(phone string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name, ok := b.customers[phone]
	return name, ok
}

func (b *fakeBackend) setFailPayments(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPayments = fail
}

// count returns how many times "METHOD path" was called
func (b *fakeBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// bearer returns the phone behind a "<kind>-<phone>" bearer token
func bearer(r *http.Request, kind string) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "+kind+"-")
	return token, ok && token != ""
}

func (b *fakeBackend) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": []string{"phone should not be empty"}})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{})
}

func (b *fakeBackend) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{})
		return
	}
	if req.Code != validCode {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "کد وارد شده صحیح نیست"})
		return
	}
	_, registered := b.firstName(req.Phone)
	writeJSON(w, http.StatusCreated, map[string]any{
		"isLoggedIn":           registered,
		"shortTermAccessToken": "stt-" + req.Phone,
	})
}

func (b *fakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	phone, ok := bearer(r, "stt")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FirstName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": []string{"firstName should not be empty"}})
		return
	}
	b.register(phone, req.FirstName)
	writeJSON(w, http.StatusCreated, map[string]any{"id": "u-" + phone})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	phone, ok := bearer(r, "stt")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	if _, registered := b.firstName(phone); !registered {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "کاربر یافت نشد"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"access_token": "access-" + phone})
}

func (b *fakeBackend) profile(w http.ResponseWriter, r *http.Request) {
	phone, ok := bearer(r, "access")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	name, _ := b.firstName(phone)
	writeJSON(w, http.StatusOK, map[string]any{"id": "u-" + phone, "phone": phone, "firstName": name, "role": "customer"})
}

func (b *fakeBackend) products(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": "p1", "title": "چای سیاه", "basePrice": 100000, "baseDiscount": 10, "stockQuantity": 3},
			{"id": "p2", "title": "قهوه", "basePrice": 250000, "baseDiscount": 0, "stockQuantity": 0},
		},
		"count": 2,
	})
}

func (b *fakeBackend) cart(w http.ResponseWriter, r *http.Request) {
	if _, ok := bearer(r, "access"); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": []map[string]any{
			{"id": "i1", "productId": "p1", "quantity": 2, "product": map[string]any{"id": "p1", "basePrice": 100000, "baseDiscount": 10}},
		},
	})
}

func (b *fakeBackend) createOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := bearer(r, "access"); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": "o-1", "status": "pending", "totalPrice": 180000})
}

func (b *fakeBackend) createPayment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	fail := b.failPayments
	b.mu.Unlock()
	if fail {
		writeJSON(w, http.StatusBadGateway, map[string]any{"message": "درگاه پرداخت در دسترس نیست"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": "pay-1", "orderId": "o-1", "redirectUrl": "https://gateway.test/pay/pay-1"})
}
