package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct {
	mock.Mock
}

func (m *mockUC) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.RegisterOutput)
	return out, args.Error(1)
}

func (m *mockUC) VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) ResendOTP(ctx context.Context, in usecase.ResendOTPInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) Login(ctx context.Context, in usecase.LoginInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) VerifyOTPLogin(ctx context.Context, in usecase.VerifyOTPLoginInput) (*usecase.VerifyOTPLoginOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.VerifyOTPLoginOutput)
	return out, args.Error(1)
}

func (m *mockUC) ResendOTPLogin(ctx context.Context, in usecase.ResendOTPLoginInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) ForgotPassword(ctx context.Context, in usecase.ForgotPasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) Profile(ctx context.Context) (*entity.Profile, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*entity.Profile)
	return out, args.Error(1)
}

// tokenJWT accepts "token-<id>" bearer tokens.
type tokenJWT struct{}

func (tokenJWT) Generate(userID, _ string) (string, error) { return "token-" + userID, nil }

func (tokenJWT) Verify(token string) (jwt.Claims, error) {
	id, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: id, Role: "user"}, nil
}

type staticID struct{}

func (staticID) Generate() string { return "cid" }

func newServer(uc uc) *router.Router {
	r := router.NewRouter(router.Config{
		UUID:       staticID{},
		JWT:        tokenJWT{},
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestHTTPEndpoint_Register(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(uc)

	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Name: "A", Email: "a@x.io", Password: "secret123", Role: "turfOwner",
	}).Return(&usecase.RegisterOutput{Created: true}, nil).Once()

	code, body := do(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@x.io","password":"secret123","role":"turfOwner"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered. Verify your email with the OTP sent.", body["message"])

	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Name: "A", Email: "a@x.io", Password: "secret123",
	}).Return(&usecase.RegisterOutput{Created: false}, nil).Once()

	code, body = do(t, srv, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@x.io","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "New OTP sent. Please verify your email.", body["message"])

	code, body = do(t, srv, http.MethodPost, "/api/auth/register", `{"name":"A","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FORMAT", body["reason"])

	uc.AssertExpectations(t)
}

func TestHTTPEndpoint_Login(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(uc)

	uc.On("Login", mock.Anything, usecase.LoginInput{Email: "a@x.io", Password: "secret123"}).Return(nil).Once()
	uc.On("Login", mock.Anything, usecase.LoginInput{Email: "a@x.io", Password: "bad"}).
		Return(goerror.NewBusinessReason(entity.ErrInvalidCredentials, "Invalid credentials", goerror.CodeUnauthorized)).Once()

	code, body := do(t, srv, http.MethodPost, "/api/auth/login", `{"email":"a@x.io","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OTP sent. Please verify to complete login.", body["message"])
	assert.Equal(t, map[string]any{"otp_required": true}, body["data"])

	code, body = do(t, srv, http.MethodPost, "/api/auth/login", `{"email":"a@x.io","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])
	assert.Equal(t, "INVALID_CREDENTIALS", body["reason"])

	uc.AssertExpectations(t)
}

func TestHTTPEndpoint_VerifyOTPLogin(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(uc)

	uc.On("VerifyOTPLogin", mock.Anything, usecase.VerifyOTPLoginInput{Email: "a@x.io", OTP: "123456"}).
		Return(&usecase.VerifyOTPLoginOutput{
			Token:   "jwt",
			Profile: entity.Profile{ID: "id-1", Name: "A", Role: entity.RoleTurfOwner},
		}, nil).Once()
	uc.On("VerifyOTPLogin", mock.Anything, usecase.VerifyOTPLoginInput{Email: "a@x.io", OTP: "000000"}).
		Return(nil, goerror.NewBusinessReason(entity.ErrExpired, "OTP expired", goerror.CodeBadRequest)).Once()

	code, body := do(t, srv, http.MethodPost, "/api/auth/verify-otp-login", `{"email":"a@x.io","otp":"123456"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, map[string]any{
		"token": "jwt",
		"user":  map[string]any{"id": "id-1", "name": "A", "role": "turfOwner"},
	}, body["data"])

	code, body = do(t, srv, http.MethodPost, "/api/auth/verify-otp-login", `{"email":"a@x.io","otp":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "EXPIRED", body["reason"])

	uc.AssertExpectations(t)
}

func TestHTTPEndpoint_Messages(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(uc)

	uc.On("VerifyOTP", mock.Anything, mock.Anything).Return(nil)
	uc.On("ResendOTP", mock.Anything, mock.Anything).Return(nil)
	uc.On("ResendOTPLogin", mock.Anything, mock.Anything).Return(nil)
	uc.On("ForgotPassword", mock.Anything, mock.Anything).Return(nil)
	uc.On("ResetPassword", mock.Anything, usecase.ResetPasswordInput{Email: "a@x.io", OTP: "1", NewPassword: "n"}).Return(nil)

	tests := []struct {
		path string
		body string
		want string
	}{
		{path: "/api/auth/verify-otp", body: `{"email":"a@x.io","otp":"1"}`, want: "OTP verified successfully"},
		{path: "/api/auth/resend-otp", body: `{"email":"a@x.io"}`, want: "A new OTP has been sent to your email."},
		{path: "/api/auth/resend-otp-login", body: `{"email":"a@x.io"}`, want: "OTP resent to your email"},
		{path: "/api/auth/forgot-password", body: `{"email":"a@x.io"}`, want: "OTP sent to email for password reset"},
		{path: "/api/auth/reset-password", body: `{"email":"a@x.io","otp":"1","newPassword":"n"}`, want: "Password reset successful"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := do(t, srv, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.want, body["message"])
		})
	}
}

func TestHTTPEndpoint_Profile(t *testing.T) {
	uc := new(mockUC)
	srv := newServer(uc)

	uc.On("Profile", mock.MatchedBy(func(ctx context.Context) bool {
		clm := jwt.GetAuth(ctx)
		return clm != nil && clm.UserID == "id-1"
	})).Return(&entity.Profile{ID: "id-1", Name: "A", Email: "a@x.io", Role: entity.RoleUser, IsVerified: true}, nil).Once()

	code, _ := do(t, srv, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := do(t, srv, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer token-id-1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{
		"id": "id-1", "name": "A", "email": "a@x.io", "role": "user", "is_verified": true,
	}, body["data"])

	uc.AssertExpectations(t)
}
