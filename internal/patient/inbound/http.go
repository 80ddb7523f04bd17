package inbound

import (
	"context"

	"github.com/careplus/woundtrack/internal/patient/usecase"
	"github.com/careplus/woundtrack/internal/pkg/router"
)

type uc interface {
	PatientCreate(ctx context.Context, in usecase.PatientCreateInput) (*usecase.PatientCreateOutput, error)
	PatientList(ctx context.Context, in usecase.PatientListInput) (*usecase.PatientListOutput, error)
	PatientDetail(ctx context.Context, in usecase.PatientDetailInput) (*usecase.PatientDetailOutput, error)
	PatientUpdate(ctx context.Context, in usecase.PatientUpdateInput) error
	PatientAssign(ctx context.Context, in usecase.PatientAssignInput) (*usecase.PatientAssignOutput, error)
	NurseList(ctx context.Context) (*usecase.NurseListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Patient Records (need authenticated & authorization)
	r.POST("/api/v1/patients", end.PatientCreate)
	r.GET("/api/v1/patients", end.PatientList)
	r.GET("/api/v1/patients/:id", end.PatientDetail)
	r.PUT("/api/v1/patients/:id", end.PatientUpdate)
	r.POST("/api/v1/patients/:id/assign", end.PatientAssign)

	// Nurse Directory (need authenticated & authorization)
	r.GET("/api/v1/nurses", end.NurseList)
}
