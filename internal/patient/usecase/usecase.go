package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"
)

type PatientAssignedEvent struct {
	AssignmentID int64
	PatientID    int64
	PatientName  string
	NurseID      int64
	NurseEmail   string
	NurseName    string
	DoctorID     int64
	DoctorName   string
}

type repoMessaging interface {
	PublishPatientAssigned(ctx context.Context, msg PatientAssignedEvent) error
}

type repoDB interface {
	GetPatientByID(ctx context.Context, id int64) (*entity.Patient, error)
	GetPatientList(ctx context.Context, filter entity.PatientListFilterData) ([]entity.Patient, int64, error)
	GetNurseByID(ctx context.Context, id int64) (*entity.Nurse, error)
	GetNurseList(ctx context.Context) ([]entity.Nurse, error)
	GetUserFullName(ctx context.Context, id int64) (string, error)
	IsNurseAssigned(ctx context.Context, patientID, nurseID int64) (bool, error)

	CreatePatient(ctx context.Context, in entity.NewPatient) error
	CreateAssignment(ctx context.Context, in entity.Assignment) error
	UpdatePatient(ctx context.Context, in entity.PatchPatient) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("patient.usecase").Start(ctx, name)
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

// canAccessPatient reports whether the caller owns or is assigned to the patient.
func (s *Usecase) canAccessPatient(ctx context.Context, clm *jwt.Claims, patient *entity.Patient) (bool, error) {
	if patient.DoctorID == clm.UserID {
		return true, nil
	}

	return s.repoDB.IsNurseAssigned(ctx, patient.ID, clm.UserID)
}
