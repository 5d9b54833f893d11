package inbound

import (
	"context"

	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/shared/event"
)

// DirectHandler accepts issued codes in process, for deployments without a
// broker. It takes the same message the broker carries.
type DirectHandler struct {
	uc  uc
	ins instrument.Instrumentation
}

func NewDirectHandler(uc uc, ins instrument.Instrumentation) *DirectHandler {
	return &DirectHandler{uc: uc, ins: ins}
}

func (h *DirectHandler) SendOTP(ctx context.Context, msg event.OTPIssuedMessage) error {
	ctx, span := h.ins.Tracer("notification.inbound.direct").Start(ctx, "SendOTP")
	defer span.End()

	return h.uc.SendOTP(ctx, toSendOTPInput(msg))
}
