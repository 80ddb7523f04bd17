package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/storage"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	access      map[[2]int64]bool // (patientID, userID)
	doctorOf    map[int64]int64
	images      map[int64]*entity.WoundImage
	assessments map[int64]*entity.Assessment
	created     []entity.NewAssessment

	createImageErr error
	deleted        []int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		access:      map[[2]int64]bool{},
		doctorOf:    map[int64]int64{},
		images:      map[int64]*entity.WoundImage{},
		assessments: map[int64]*entity.Assessment{},
	}
}

func (f *fakeDB) CanAccessPatient(_ context.Context, patientID, userID int64) (bool, error) {
	return f.access[[2]int64{patientID, userID}], nil
}

func (f *fakeDB) GetPatientDoctorID(_ context.Context, patientID int64) (int64, error) {
	if id, ok := f.doctorOf[patientID]; ok {
		return id, nil
	}
	return 0, goerror.ErrNotFound
}

func (f *fakeDB) GetImageByID(_ context.Context, id int64) (*entity.WoundImage, error) {
	if img, ok := f.images[id]; ok {
		return img, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetImageList(_ context.Context, patientID int64) ([]entity.WoundImage, error) {
	var out []entity.WoundImage
	for _, img := range f.images {
		if img.PatientID == patientID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (f *fakeDB) GetAssessmentByID(_ context.Context, id int64) (*entity.Assessment, error) {
	if a, ok := f.assessments[id]; ok {
		return a, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetAssessmentList(_ context.Context, _ int64) ([]entity.AssessmentDetail, error) {
	return nil, nil
}

func (f *fakeDB) CountImagesForPatient(_ context.Context, patientID int64, imageIDs []int64) (int64, error) {
	var n int64
	for _, id := range imageIDs {
		if img, ok := f.images[id]; ok && img.PatientID == patientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) CreateImage(_ context.Context, in entity.WoundImage) error {
	if f.createImageErr != nil {
		return f.createImageErr
	}
	img := in
	f.images[in.ID] = &img
	return nil
}

func (f *fakeDB) NewAssessment(_ context.Context, in entity.NewAssessment) error {
	f.created = append(f.created, in)
	f.assessments[in.ID] = &entity.Assessment{
		ID:          in.ID,
		PatientID:   in.PatientID,
		AuthorID:    in.AuthorID,
		Description: in.Description,
	}
	return nil
}

func (f *fakeDB) DeleteImage(_ context.Context, id int64) error {
	delete(f.images, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDB) DeleteAssessment(_ context.Context, id int64) error {
	delete(f.assessments, id)
	return nil
}

type fakeStorage struct {
	storage.Storage

	objects map[string][]byte
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, _ storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.objects[bucket+"/"+key] = data
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(data))}, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, bucket, key string) error {
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + bucket + "/" + key, nil
}

type cfgStub struct {
	config.Config
}

func (cfgStub) GetInt64(string) int64          { return 1 } // 1 MiB image cap
func (cfgStub) GetString(string) string        { return "woundtrack" }
func (cfgStub) GetMinute(string) time.Duration { return 15 * time.Minute }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubNumberID struct{ next int64 }

func (s *stubNumberID) Generate() int64 {
	s.next++
	return s.next
}

func testEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicies([][]string{
		{"DOCTOR", "*", "*"},
		{"NURSE", "images", "read"},
		{"NURSE", "images", "write"},
		{"NURSE", "assessments", "read"},
		{"NURSE", "assessments", "write"},
	})
	require.NoError(t, err)

	return e
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	storage *fakeStorage
	clock   *stubClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	db := newFakeDB()
	stg := newFakeStorage()
	clk := &stubClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}

	uc := New(Dependency{
		RepoDB:     db,
		Validator:  v,
		Config:     cfgStub{},
		Storage:    stg,
		UID:        &stubNumberID{next: 500},
		Clock:      clk,
		Instrument: instrument.NewNoop(),
		Enforcer:   testEnforcer(t),
	})

	return &fixture{uc: uc, db: db, storage: stg, clock: clk}
}

func asDoctor(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Role: "DOCTOR"})
}

func asNurse(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Role: "NURSE"})
}

func requireBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var appErr *goerror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}

func pngBytes(extra int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return append(header, make([]byte, extra)...)
}

func TestImageUpload(t *testing.T) {
	t.Run("StoresPNG", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true

		out, err := f.uc.ImageUpload(asDoctor(1), ImageUploadInput{
			PatientID: 10,
			File:      bytes.NewReader(pngBytes(100)),
		})

		require.NoError(t, err)
		require.Equal(t, "image/png", out.Image.ContentType)
		require.Equal(t, int64(108), out.Image.Size)
		require.Equal(t, "wounds/2026/03/14/501.png", out.Image.ObjectKey)
		require.Contains(t, f.storage.objects, "woundtrack/"+out.Image.ObjectKey)
	})

	t.Run("RejectsNonImage", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true

		_, err := f.uc.ImageUpload(asDoctor(1), ImageUploadInput{
			PatientID: 10,
			File:      bytes.NewReader([]byte("just some text, definitely not a photo")),
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
		require.Empty(t, f.storage.objects)
	})

	t.Run("RejectsOversize", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true

		_, err := f.uc.ImageUpload(asDoctor(1), ImageUploadInput{
			PatientID: 10,
			File:      bytes.NewReader(pngBytes(1024*1024 + 10)),
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
		require.Empty(t, f.storage.objects)
	})

	t.Run("DeniedPatientLooksMissing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ImageUpload(asNurse(2), ImageUploadInput{
			PatientID: 10,
			File:      bytes.NewReader(pngBytes(100)),
		})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("CleansUpObjectOnDBFailure", func(t *testing.T) {
		f := newFixture(t)
		f.db.access[[2]int64{10, 1}] = true
		f.db.createImageErr = errors.New("insert failed")

		_, err := f.uc.ImageUpload(asDoctor(1), ImageUploadInput{
			PatientID: 10,
			File:      bytes.NewReader(pngBytes(100)),
		})

		require.Error(t, err)
		require.Empty(t, f.storage.objects, "the stored object must be removed when the row insert fails")
	})
}
