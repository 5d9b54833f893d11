package inbound

import (
	"context"

	"github.com/shandysiswandi/turftime/internal/notification/usecase"
	"github.com/shandysiswandi/turftime/internal/shared/event"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) error
}

func toSendOTPInput(msg event.OTPIssuedMessage) usecase.SendOTPInput {
	return usecase.SendOTPInput{
		AccountID:  msg.AccountID,
		Email:      msg.Email,
		Name:       msg.Name,
		Code:       msg.Code,
		Purpose:    msg.Purpose,
		TTLMinutes: msg.TTLMinutes,
	}
}
