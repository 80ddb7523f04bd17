package email

import (
	"context"
	"fmt"

	"github.com/careplus/woundtrack/internal/identity/usecase"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) SendLoginCode(ctx context.Context, msg usecase.LoginCodeEmail) error {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendLoginCode")
	defer span.End()

	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s.\n\nIt expires at %s. If you did not try to sign in, you can ignore this email.\n",
		msg.FullName, msg.Code, msg.ExpiresAt.Format("15:04 MST"),
	)

	if err := m.client.Send(ctx, mail.Message{
		To:       []string{msg.Email},
		Subject:  "Your sign-in verification code",
		TextBody: body,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
