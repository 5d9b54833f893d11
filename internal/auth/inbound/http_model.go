package inbound

import "net/http"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type RegisterResponse struct {
	created bool
}

func (r RegisterResponse) Message() string {
	if r.created {
		return "User registered. Verify your email with the OTP sent."
	}
	return "New OTP sent. Please verify your email."
}

func (r RegisterResponse) StatusCode() int {
	if r.created {
		return http.StatusCreated
	}
	return http.StatusOK
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct{}

func (VerifyOTPResponse) Message() string {
	return "OTP verified successfully"
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type ResendOTPResponse struct{}

func (ResendOTPResponse) Message() string {
	return "A new OTP has been sent to your email."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OTPRequired bool `json:"otp_required"`
}

func (LoginResponse) Message() string {
	return "OTP sent. Please verify to complete login."
}

type VerifyOTPLoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type VerifyOTPLoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

func (VerifyOTPLoginResponse) Message() string {
	return "Login successful"
}

type ResendOTPLoginRequest struct {
	Email string `json:"email"`
}

type ResendOTPLoginResponse struct{}

func (ResendOTPLoginResponse) Message() string {
	return "OTP resent to your email"
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordResponse struct{}

func (ForgotPasswordResponse) Message() string {
	return "OTP sent to email for password reset"
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordResponse struct{}

func (ResetPasswordResponse) Message() string {
	return "Password reset successful"
}

type ProfileResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

func (ProfileResponse) Message() string {
	return "Profile retrieved successfully"
}
