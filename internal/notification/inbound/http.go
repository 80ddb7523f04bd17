package inbound

import (
	"context"

	"github.com/careplus/woundtrack/internal/notification/usecase"
	"github.com/careplus/woundtrack/internal/pkg/router"
)

type uc interface {
	ConsumePatientAssigned(ctx context.Context, in usecase.ConsumePatientAssignedInput) error

	ListNotifications(ctx context.Context, in usecase.ListNotificationsInput) (*usecase.ListNotificationsOutput, error)
	MarkRead(ctx context.Context, in usecase.MarkReadInput) error
	MarkReadAll(ctx context.Context) (*usecase.MarkReadAllOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Notifications (need authenticated)
	r.GET("/api/v1/notifications", end.ListNotifications)
	r.PATCH("/api/v1/notifications/:id/read", end.MarkRead)
	r.PUT("/api/v1/notifications/read-all", end.MarkReadAll)
}
