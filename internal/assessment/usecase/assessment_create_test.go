package usecase

import (
	"testing"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func (f *fixture) seedImage(id, patientID, uploadedBy int64) {
	f.db.images[id] = &entity.WoundImage{
		ID:          id,
		PatientID:   patientID,
		UploadedBy:  uploadedBy,
		ObjectKey:   "wounds/2026/03/14/999.png",
		ContentType: "image/png",
		Size:        100,
	}
}

func TestAssessmentCreate(t *testing.T) {
	t.Run("CreatesWithImages", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 2}] = true
		f.seedImage(31, 10, 2)
		f.seedImage(32, 10, 2)

		out, err := f.uc.AssessmentCreate(asNurse(2), AssessmentCreateInput{
			PatientID:   10,
			Description: "granulation tissue forming, no signs of infection",
			ImageIDs:    []int64{31, 32},
		})

		require.NoError(t, err)
		require.NotZero(t, out.AssessmentID)
		require.Len(t, f.db.created, 1)
		require.Equal(t, []int64{31, 32}, f.db.created[0].ImageIDs)
		require.Equal(t, int64(2), f.db.created[0].AuthorID)
	})

	t.Run("CreatesWithoutImages", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true

		out, err := f.uc.AssessmentCreate(asDoctor(1), AssessmentCreateInput{
			PatientID:   10,
			Description: "wound measured 2x3cm",
		})

		require.NoError(t, err)
		require.NotZero(t, out.AssessmentID)
	})

	t.Run("RejectsForeignImages", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true
		f.seedImage(31, 10, 1)
		f.seedImage(40, 99, 1) // belongs to another patient

		_, err := f.uc.AssessmentCreate(asDoctor(1), AssessmentCreateInput{
			PatientID:   10,
			Description: "note",
			ImageIDs:    []int64{31, 40},
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
		require.Empty(t, f.db.created)
	})

	t.Run("DeniedPatientLooksMissing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.AssessmentCreate(asNurse(2), AssessmentCreateInput{
			PatientID:   10,
			Description: "note",
		})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("MissingDescription", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true

		_, err := f.uc.AssessmentCreate(asDoctor(1), AssessmentCreateInput{PatientID: 10})

		var appErr *goerror.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, goerror.TypeValidation, appErr.Type())
	})
}

func TestImageDelete(t *testing.T) {
	t.Run("UploaderDeletes", func(t *testing.T) {
		f := newFixture(t)
		f.seedImage(31, 10, 2)

		err := f.uc.ImageDelete(asNurse(2), ImageDeleteInput{ImageID: 31})

		require.NoError(t, err)
		require.Equal(t, []int64{31}, f.db.deleted)
	})

	t.Run("PatientDoctorDeletes", func(t *testing.T) {
		f := newFixture(t)
		f.seedImage(31, 10, 2)
		f.db.doctorOf[10] = 1

		err := f.uc.ImageDelete(asDoctor(1), ImageDeleteInput{ImageID: 31})

		require.NoError(t, err)
	})

	t.Run("OtherUserGetsNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.seedImage(31, 10, 2)
		f.db.doctorOf[10] = 1

		err := f.uc.ImageDelete(asNurse(3), ImageDeleteInput{ImageID: 31})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("UnknownImage", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.ImageDelete(asDoctor(1), ImageDeleteInput{ImageID: 404})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})
}
