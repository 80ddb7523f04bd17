package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func (f *fixture) seedPatient(id, doctorID int64) {
	f.db.patients[id] = &entity.Patient{
		ID:                  id,
		FirstName:           "Ada",
		LastName:            "Lovelace",
		DateOfBirth:         time.Date(1956, 12, 10, 0, 0, 0, 0, time.UTC),
		Gender:              entity.GenderFemale,
		MedicalRecordNumber: "MRN-0001",
		DoctorID:            doctorID,
	}
}

func (f *fixture) seedNurse(id int64, active bool) {
	f.db.nurses[id] = &entity.Nurse{
		ID:        id,
		Username:  "nurse",
		Email:     "nurse@careplus.dev",
		FirstName: "Flo",
		LastName:  "Nightingale",
		Active:    active,
	}
}

func TestPatientAssign(t *testing.T) {
	t.Run("AssignsAndPublishesEvent", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, true)
		f.db.names[1] = "Greg House"

		out, err := f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 20})

		require.NoError(t, err)
		require.NotZero(t, out.AssignmentID)

		require.Len(t, f.msg.published, 1)
		evt := f.msg.published[0]
		require.Equal(t, out.AssignmentID, evt.AssignmentID)
		require.Equal(t, "Ada Lovelace", evt.PatientName)
		require.Equal(t, "nurse@careplus.dev", evt.NurseEmail)
		require.Equal(t, "Flo Nightingale", evt.NurseName)
		require.Equal(t, "Greg House", evt.DoctorName)
	})

	t.Run("OnlyOwningDoctor", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, true)

		_, err := f.uc.PatientAssign(asDoctor(99), PatientAssignInput{PatientID: 10, NurseID: 20})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("NurseCannotAssign", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, true)

		_, err := f.uc.PatientAssign(asNurse(20), PatientAssignInput{PatientID: 10, NurseID: 20})

		requireBusinessCode(t, err, goerror.CodeForbidden)
	})

	t.Run("UnknownNurse", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)

		_, err := f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 404})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("DisabledNurse", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, false)

		_, err := f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 20})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("DuplicateAssignment", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, true)

		_, err := f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 20})
		require.NoError(t, err)

		_, err = f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 20})
		requireBusinessCode(t, err, goerror.CodeConflict)
	})

	t.Run("PublishFailureDoesNotFailAssignment", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.seedNurse(20, true)
		f.msg.err = errors.New("broker down")

		out, err := f.uc.PatientAssign(asDoctor(1), PatientAssignInput{PatientID: 10, NurseID: 20})

		require.NoError(t, err)
		require.NotZero(t, out.AssignmentID)
	})
}

func TestPatientDetail(t *testing.T) {
	t.Run("OwningDoctorSees", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)

		out, err := f.uc.PatientDetail(asDoctor(1), PatientDetailInput{PatientID: 10})

		require.NoError(t, err)
		require.Equal(t, int64(10), out.Patient.ID)
	})

	t.Run("AssignedNurseSees", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)
		f.db.assignments[[2]int64{10, 20}] = entity.Assignment{ID: 1, PatientID: 10, NurseID: 20}

		out, err := f.uc.PatientDetail(asNurse(20), PatientDetailInput{PatientID: 10})

		require.NoError(t, err)
		require.Equal(t, int64(10), out.Patient.ID)
	})

	t.Run("UnassignedNurseGetsNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)

		_, err := f.uc.PatientDetail(asNurse(20), PatientDetailInput{PatientID: 10})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("OtherDoctorGetsNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.seedPatient(10, 1)

		_, err := f.uc.PatientDetail(asDoctor(2), PatientDetailInput{PatientID: 10})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})
}
