package mq

import (
	"context"
	"encoding/json"

	"github.com/careplus/woundtrack/internal/patient/usecase"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/messaging"
	"github.com/careplus/woundtrack/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishPatientAssigned(ctx context.Context, msg usecase.PatientAssignedEvent) error {
	ctx, span := m.ins.Tracer("patient.outbound.mq").Start(ctx, "PublishPatientAssigned")
	defer span.End()

	body, err := json.Marshal(event.PatientAssignedMessage{
		AssignmentID: msg.AssignmentID,
		PatientID:    msg.PatientID,
		PatientName:  msg.PatientName,
		NurseID:      msg.NurseID,
		NurseEmail:   msg.NurseEmail,
		NurseName:    msg.NurseName,
		DoctorID:     msg.DoctorID,
		DoctorName:   msg.DoctorName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PatientAssignedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
