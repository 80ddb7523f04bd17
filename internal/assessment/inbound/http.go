package inbound

import (
	"context"

	"github.com/careplus/woundtrack/internal/assessment/usecase"
	"github.com/careplus/woundtrack/internal/pkg/router"
)

type uc interface {
	ImageUpload(ctx context.Context, in usecase.ImageUploadInput) (*usecase.ImageUploadOutput, error)
	ImageList(ctx context.Context, in usecase.ImageListInput) (*usecase.ImageListOutput, error)
	ImageDelete(ctx context.Context, in usecase.ImageDeleteInput) error
	AssessmentCreate(ctx context.Context, in usecase.AssessmentCreateInput) (*usecase.AssessmentCreateOutput, error)
	AssessmentList(ctx context.Context, in usecase.AssessmentListInput) (*usecase.AssessmentListOutput, error)
	AssessmentDelete(ctx context.Context, in usecase.AssessmentDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Wound Images (need authenticated & authorization)
	r.POST("/api/v1/patients/:id/images", end.ImageUpload)
	r.GET("/api/v1/patients/:id/images", end.ImageList)
	r.DELETE("/api/v1/images/:id", end.ImageDelete)

	// Assessments (need authenticated & authorization)
	r.POST("/api/v1/patients/:id/assessments", end.AssessmentCreate)
	r.GET("/api/v1/patients/:id/assessments", end.AssessmentList)
	r.DELETE("/api/v1/assessments/:id", end.AssessmentDelete)
}
