package inbound

import (
	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/router"
)

// HTTPEndpoint exposes the signup, login and password reset flows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account, or refreshes an unverified one, and emails a code.
// @Summary Register account
// @Description Creates an unverified account and emails a signup OTP. Registering again with an unverified email updates it and sends a new OTP.
// @Tags Auth, Signup
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register payload"
// @Success 201 {object} router.successResponse "Account created"
// @Success 200 {object} router.successResponse "Unverified account refreshed"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{created: resp.Created}, nil
}

// @Summary Verify signup OTP
// @Tags Auth, Signup
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify payload"
// @Success 200 {object} router.successResponse "Account verified"
// @Failure 400 {object} router.errorResponse "No active, invalid or expired OTP"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return VerifyOTPResponse{}, nil
}

// @Summary Resend signup OTP
// @Tags Auth, Signup
// @Accept json
// @Produce json
// @Param request body ResendOTPRequest true "Resend payload"
// @Success 200 {object} router.successResponse "OTP sent"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Already verified"
// @Router /api/auth/resend-otp [post]
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ResendOTPResponse{}, nil
}

// Login checks the password and emails a login code.
// @Summary Login step one
// @Description Checks the credentials of a verified account and emails a login OTP. No token is returned here.
// @Tags Auth, Login
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "OTP sent"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Email not verified"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return LoginResponse{OTPRequired: true}, nil
}

// VerifyOTPLogin exchanges the login code for a session token.
// @Summary Login step two
// @Tags Auth, Login
// @Accept json
// @Produce json
// @Param request body VerifyOTPLoginRequest true "Verify payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPLoginResponse} "Session token"
// @Failure 400 {object} router.errorResponse "No active, invalid or expired OTP"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/auth/verify-otp-login [post]
func (h *HTTPEndpoint) VerifyOTPLogin(r *router.Request) (any, error) {
	var req VerifyOTPLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTPLogin(r.Context(), usecase.VerifyOTPLoginInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPLoginResponse{
		Token: resp.Token,
		User: LoginUser{
			ID:   resp.Profile.ID,
			Name: resp.Profile.Name,
			Role: resp.Profile.Role.String(),
		},
	}, nil
}

// @Summary Resend login OTP
// @Tags Auth, Login
// @Accept json
// @Produce json
// @Param request body ResendOTPLoginRequest true "Resend payload"
// @Success 200 {object} router.successResponse "OTP sent"
// @Failure 404 {object} router.errorResponse "User not found or not verified"
// @Router /api/auth/resend-otp-login [post]
func (h *HTTPEndpoint) ResendOTPLogin(r *router.Request) (any, error) {
	var req ResendOTPLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendOTPLogin(r.Context(), usecase.ResendOTPLoginInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ResendOTPLoginResponse{}, nil
}

// @Summary Request password reset
// @Tags Auth, Password
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Forgot payload"
// @Success 200 {object} router.successResponse "OTP sent"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/auth/forgot-password [post]
func (h *HTTPEndpoint) ForgotPassword(r *router.Request) (any, error) {
	var req ForgotPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ForgotPassword(r.Context(), usecase.ForgotPasswordInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ForgotPasswordResponse{}, nil
}

// @Summary Reset password
// @Tags Auth, Password
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset payload"
// @Success 200 {object} router.successResponse "Password changed"
// @Failure 400 {object} router.errorResponse "Invalid or expired OTP"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/auth/reset-password [post]
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{}, nil
}

// @Summary Current account
// @Tags Auth, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/auth/me [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:         resp.ID,
		Name:       resp.Name,
		Email:      resp.Email,
		Phone:      resp.Phone,
		Role:       resp.Role.String(),
		IsVerified: resp.IsVerified,
	}, nil
}
