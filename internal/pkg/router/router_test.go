package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/idempotency"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct{}

func (fakeJWT) Generate(userID, role string) (string, error) { return userID + "." + role, nil }

func (fakeJWT) Verify(token string) (jwt.Claims, error) {
	id, role, ok := strings.Cut(token, ".")
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: id, Role: role}, nil
}

type fakeID struct{}

func (fakeID) Generate() string { return "cid-generated" }

type memIdempotency struct {
	mu    sync.Mutex
	state map[string]idempotency.State
}

func (m *memIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.state[key]; ok {
		return s, nil
	}
	m.state[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (m *memIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[key] = idempotency.StateCompleted
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, key)
	return nil
}

func (m *memIdempotency) Exec(context.Context, string, func(context.Context) error, ...idempotency.Option) error {
	return nil
}

type createdResp struct {
	Email string `json:"email"`
}

func (createdResp) Message() string { return "User registered" }
func (createdResp) StatusCode() int { return http.StatusCreated }

func newTestRouter(store idempotency.Idempotency) *Router {
	return NewRouter(Config{
		UUID:        fakeID{},
		JWT:         fakeJWT{},
		Instrument:  instrument.NewNoop(),
		Idempotency: store,
	})
}

func serve(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_Banner(t *testing.T) {
	r := newTestRouter(nil)

	rec := serve(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TurfTime API is running", decode(t, rec)["message"])

	rec = serve(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	r := newTestRouter(nil)
	r.POST("/api/auth/register", func(req *Request) (any, error) {
		var in struct {
			Email string `json:"email"`
		}
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return createdResp{Email: in.Email}, nil
	})

	rec := serve(r, http.MethodPost, "/api/auth/register", `{"email":"a@x.com"}`, map[string]string{HeaderCorrelationID: "cid-1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))

	body := decode(t, rec)
	assert.Equal(t, "User registered", body["message"])
	assert.Equal(t, map[string]any{"email": "a@x.com"}, body["data"])

	rec = serve(r, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","admin":true}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec)["message"])
	assert.Equal(t, "cid-generated", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	r := newTestRouter(nil)
	r.POST("/api/auth/verify-otp", func(*Request) (any, error) {
		return nil, goerror.NewBusinessReason("INVALID_CODE", "Invalid OTP", goerror.CodeBadRequest)
	})
	r.POST("/api/auth/login", func(*Request) (any, error) {
		return nil, goerror.NewInvalidInput(validator.V10ValidationError{"email": "email is a required field"})
	})
	r.POST("/api/auth/resend-otp", func(*Request) (any, error) {
		return nil, errors.New("raw")
	})
	r.POST("/api/auth/forgot-password", func(*Request) (any, error) {
		panic("boom")
	})

	rec := serve(r, http.MethodPost, "/api/auth/verify-otp", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"message": "Invalid OTP", "reason": "INVALID_CODE"}, decode(t, rec))

	rec = serve(r, http.MethodPost, "/api/auth/login", `{}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, map[string]any{"email": "email is a required field"}, body["error"])
	assert.Equal(t, "VALIDATION_ERROR", body["reason"])

	rec = serve(r, http.MethodPost, "/api/auth/resend-otp", `{}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "INTERNAL", body["reason"])

	rec = serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_Authentication(t *testing.T) {
	r := newTestRouter(nil)
	r.GET("/api/auth/me", func(req *Request) (any, error) {
		claims := jwt.GetAuth(req.Context())
		return map[string]string{"id": claims.UserID, "role": claims.Role}, nil
	})

	rec := serve(r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/api/auth/me", "", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodGet, "/api/auth/me", "", map[string]string{"Authorization": "Bearer id-1.admin"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": "id-1", "role": "admin"}, decode(t, rec)["data"])
}

func TestRouter_Idempotency(t *testing.T) {
	store := &memIdempotency{state: map[string]idempotency.State{}}
	r := newTestRouter(store)

	calls := 0
	fail := true
	r.POST("/api/auth/forgot-password", func(*Request) (any, error) {
		calls++
		if fail {
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}
		return map[string]string{}, nil
	})

	key := map[string]string{HeaderIdempotencyKey: "k-1"}

	rec := serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, key)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	fail = false
	rec = serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, key)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, key)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 3, calls)

	rec = serve(r, http.MethodPost, "/api/auth/forgot-password", `{}`, map[string]string{HeaderIdempotencyKey: strings.Repeat("k", 200)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_IdempotencyPerCaller(t *testing.T) {
	store := &memIdempotency{state: map[string]idempotency.State{}}
	r := newTestRouter(store)

	calls := 0
	r.POST("/api/auth/login", func(*Request) (any, error) {
		calls++
		return map[string]string{}, nil
	})

	alice := map[string]string{HeaderIdempotencyKey: "retry-1", "X-Forwarded-For": "203.0.113.7"}
	bob := map[string]string{HeaderIdempotencyKey: "retry-1", "X-Forwarded-For": "198.51.100.9"}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/auth/login", `{}`, alice).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/auth/login", `{}`, bob).Code)
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodPost, "/api/auth/login", `{}`, alice).Code)
	assert.Equal(t, 2, calls)

	r.POST("/api/bookings", func(*Request) (any, error) { return map[string]string{}, nil })
	first := map[string]string{HeaderIdempotencyKey: "k", "Authorization": "Bearer id-1.user", "X-Forwarded-For": "203.0.113.7"}
	second := map[string]string{HeaderIdempotencyKey: "k", "Authorization": "Bearer id-2.user", "X-Forwarded-For": "203.0.113.7"}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/bookings", `{}`, first).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/bookings", `{}`, second).Code)
}

func TestIdempotencyScope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "ip:203.0.113.7|/x|k", idempotencyScope(req, "k"))

	req = req.WithContext(jwt.SetAuth(req.Context(), jwt.Claims{UserID: "acc-1"}))
	assert.Equal(t, "account:acc-1|/x|k", idempotencyScope(req, "k"))
}

func TestChain_Order(t *testing.T) {
	var trail []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { trail = append(trail, "handler") }), mw("a"), nil, mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, trail)
}
