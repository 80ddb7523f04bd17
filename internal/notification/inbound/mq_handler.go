package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/careplus/woundtrack/internal/notification/usecase"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/messaging"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PatientAssignedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PatientAssignedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: patient assigned notification", "msg_body", string(body))

	var payload event.PatientAssignedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of patient assigned notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePatientAssigned(ctx, usecase.ConsumePatientAssignedInput{
		AssignmentID: payload.AssignmentID,
		PatientID:    payload.PatientID,
		PatientName:  payload.PatientName,
		NurseID:      payload.NurseID,
		NurseEmail:   payload.NurseEmail,
		NurseName:    payload.NurseName,
		DoctorName:   payload.DoctorName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume patient assigned", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
