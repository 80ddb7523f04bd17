package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/storage"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CanAccessPatient(ctx context.Context, patientID, userID int64) (bool, error)
	GetPatientDoctorID(ctx context.Context, patientID int64) (int64, error)
	GetImageByID(ctx context.Context, id int64) (*entity.WoundImage, error)
	GetImageList(ctx context.Context, patientID int64) ([]entity.WoundImage, error)
	GetAssessmentByID(ctx context.Context, id int64) (*entity.Assessment, error)
	GetAssessmentList(ctx context.Context, patientID int64) ([]entity.AssessmentDetail, error)
	CountImagesForPatient(ctx context.Context, patientID int64, imageIDs []int64) (int64, error)

	CreateImage(ctx context.Context, in entity.WoundImage) error
	NewAssessment(ctx context.Context, in entity.NewAssessment) error

	DeleteImage(ctx context.Context, id int64) error
	DeleteAssessment(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	cfg       config.Config
	storage   storage.Storage
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	enforcer  *casbin.Enforcer
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Config     config.Config
	Storage    storage.Storage
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		cfg:       dep.Config,
		storage:   dep.Storage,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("assessment.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// ensurePatientAccess hides patients the caller neither owns nor is assigned to.
func (s *Usecase) ensurePatientAccess(ctx context.Context, clm *jwt.Claims, patientID int64) error {
	ok, err := s.repoDB.CanAccessPatient(ctx, patientID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check patient access", "patient_id", patientID, "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "patient access denied", "patient_id", patientID, "user_id", clm.UserID)
		return goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}

	return nil
}
