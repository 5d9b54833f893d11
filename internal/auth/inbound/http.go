package inbound

import (
	"context"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) error
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) error

	Login(ctx context.Context, in usecase.LoginInput) error
	VerifyOTPLogin(ctx context.Context, in usecase.VerifyOTPLoginInput) (*usecase.VerifyOTPLoginOutput, error)
	ResendOTPLogin(ctx context.Context, in usecase.ResendOTPLoginInput) error

	ForgotPassword(ctx context.Context, in usecase.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error

	Profile(ctx context.Context) (*entity.Profile, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Signup
	r.POST("/api/auth/register", end.Register)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)
	r.POST("/api/auth/resend-otp", end.ResendOTP)

	// Login (password, then emailed code)
	r.POST("/api/auth/login", end.Login)
	r.POST("/api/auth/verify-otp-login", end.VerifyOTPLogin)
	r.POST("/api/auth/resend-otp-login", end.ResendOTPLogin)

	// Password
	r.POST("/api/auth/forgot-password", end.ForgotPassword)
	r.POST("/api/auth/reset-password", end.ResetPassword)

	// need authenticated
	r.GET("/api/auth/me", end.Profile)
}
