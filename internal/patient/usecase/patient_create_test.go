package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
)

func validCreateInput() PatientCreateInput {
	return PatientCreateInput{
		FirstName:           "Ada",
		LastName:            "Lovelace",
		DateOfBirth:         time.Date(1956, 12, 10, 0, 0, 0, 0, time.UTC),
		Gender:              entity.GenderFemale,
		MedicalRecordNumber: "MRN-0001",
		Notes:               "venous ulcer, left ankle",
	}
}

func TestPatientCreate(t *testing.T) {
	t.Run("DoctorOwnsCreatedPatient", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.uc.PatientCreate(asDoctor(1), validCreateInput())

		require.NoError(t, err)
		require.Equal(t, int64(1), out.Patient.DoctorID)
		require.Equal(t, "MRN-0001", out.Patient.MedicalRecordNumber)
		require.Equal(t, "Ada Lovelace", out.Patient.FullName())
	})

	t.Run("NurseForbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientCreate(asNurse(2), validCreateInput())

		requireBusinessCode(t, err, goerror.CodeForbidden)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientCreate(context.Background(), validCreateInput())

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("FutureDateOfBirth", func(t *testing.T) {
		f := newFixture(t)

		in := validCreateInput()
		in.DateOfBirth = f.clock.now.Add(24 * time.Hour)

		_, err := f.uc.PatientCreate(asDoctor(1), in)

		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("DuplicateMedicalRecordNumber", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientCreate(asDoctor(1), validCreateInput())
		require.NoError(t, err)

		_, err = f.uc.PatientCreate(asDoctor(1), validCreateInput())
		requireBusinessCode(t, err, goerror.CodeConflict)
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientCreate(asDoctor(1), PatientCreateInput{})

		var appErr *goerror.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, goerror.TypeValidation, appErr.Type())
	})
}

func TestPatientList(t *testing.T) {
	t.Run("DoctorFiltersByOwnership", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientList(asDoctor(1), PatientListInput{})

		require.NoError(t, err)
		require.Equal(t, int64(1), f.db.lastFilter.DoctorID)
		require.Zero(t, f.db.lastFilter.NurseID)
		require.Equal(t, int32(20), f.db.lastFilter.Size)
		require.Equal(t, int32(1), f.db.lastFilter.Page)
	})

	t.Run("NurseFiltersByAssignment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.PatientList(asNurse(7), PatientListInput{Search: "ada", Size: 5, Page: 2})

		require.NoError(t, err)
		require.Equal(t, int64(7), f.db.lastFilter.NurseID)
		require.Zero(t, f.db.lastFilter.DoctorID)
		require.Equal(t, "ada", f.db.lastFilter.Search)
		require.Equal(t, int32(5), f.db.lastFilter.Size)
		require.Equal(t, int32(2), f.db.lastFilter.Page)
	})

	t.Run("UnknownRoleForbidden", func(t *testing.T) {
		f := newFixture(t)

		// a role with no policy rows is denied by the enforcer
		ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 9, Role: "ADMIN"})
		_, err := f.uc.PatientList(ctx, PatientListInput{})

		requireBusinessCode(t, err, goerror.CodeForbidden)
	})
}
