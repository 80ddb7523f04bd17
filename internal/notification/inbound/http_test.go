package inbound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careplus/woundtrack/internal/notification/usecase"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/router"
)

type stubUC struct{}

func (stubUC) ConsumePatientAssigned(context.Context, usecase.ConsumePatientAssignedInput) error {
	return nil
}

func (stubUC) ListNotifications(context.Context, usecase.ListNotificationsInput) (*usecase.ListNotificationsOutput, error) {
	return nil, nil
}

func (stubUC) MarkRead(context.Context, usecase.MarkReadInput) error { return nil }

func (stubUC) MarkReadAll(context.Context) (*usecase.MarkReadAllOutput, error) { return nil, nil }

func TestRegisterHTTPEndpoint(t *testing.T) {
	// httprouter panics at registration time when a wildcard segment and a
	// static segment collide under the same method tree. The mark-read and
	// mark-all routes share the /api/v1/notifications prefix, so registering
	// every endpoint must not blow up at boot.
	ro := router.NewRouter(router.Config{Instrument: instrument.NewNoop()})

	require.NotPanics(t, func() {
		RegisterHTTPEndpoint(ro, stubUC{})
	})
}
