package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	patients    map[int64]*entity.Patient
	nurses      map[int64]*entity.Nurse
	assignments map[[2]int64]entity.Assignment // (patientID, nurseID)
	names       map[int64]string

	lastFilter entity.PatientListFilterData
	listResult []entity.Patient
	listTotal  int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		patients:    map[int64]*entity.Patient{},
		nurses:      map[int64]*entity.Nurse{},
		assignments: map[[2]int64]entity.Assignment{},
		names:       map[int64]string{},
	}
}

func (f *fakeDB) GetPatientByID(_ context.Context, id int64) (*entity.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetPatientList(_ context.Context, filter entity.PatientListFilterData) ([]entity.Patient, int64, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeDB) GetNurseByID(_ context.Context, id int64) (*entity.Nurse, error) {
	if n, ok := f.nurses[id]; ok {
		return n, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetNurseList(_ context.Context) ([]entity.Nurse, error) {
	out := make([]entity.Nurse, 0, len(f.nurses))
	for _, n := range f.nurses {
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeDB) GetUserFullName(_ context.Context, id int64) (string, error) {
	return f.names[id], nil
}

func (f *fakeDB) IsNurseAssigned(_ context.Context, patientID, nurseID int64) (bool, error) {
	_, ok := f.assignments[[2]int64{patientID, nurseID}]
	return ok, nil
}

func (f *fakeDB) CreatePatient(_ context.Context, in entity.NewPatient) error {
	for _, p := range f.patients {
		if p.MedicalRecordNumber == in.MedicalRecordNumber {
			return goerror.ErrConflict
		}
	}
	f.patients[in.ID] = &entity.Patient{
		ID:                  in.ID,
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		DateOfBirth:         in.DateOfBirth,
		Gender:              in.Gender,
		MedicalRecordNumber: in.MedicalRecordNumber,
		Notes:               in.Notes,
		DoctorID:            in.DoctorID,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	return nil
}

func (f *fakeDB) CreateAssignment(_ context.Context, in entity.Assignment) error {
	key := [2]int64{in.PatientID, in.NurseID}
	if _, ok := f.assignments[key]; ok {
		return goerror.ErrConflict
	}
	f.assignments[key] = in
	return nil
}

func (f *fakeDB) UpdatePatient(_ context.Context, in entity.PatchPatient) error {
	p, ok := f.patients[in.ID]
	if !ok {
		return goerror.ErrNotFound
	}
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.Notes = in.Notes
	return nil
}

type fakeMessaging struct {
	published []PatientAssignedEvent
	err       error
}

func (f *fakeMessaging) PublishPatientAssigned(_ context.Context, msg PatientAssignedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

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
		{"NURSE", "patients", "read"},
		{"NURSE", "images", "read"},
		{"NURSE", "images", "write"},
		{"NURSE", "assessments", "read"},
		{"NURSE", "assessments", "write"},
	})
	require.NoError(t, err)

	return e
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	msg   *fakeMessaging
	clock *stubClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	db := newFakeDB()
	msg := &fakeMessaging{}
	clk := &stubClock{now: time.Now()}

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: msg,
		Validator:     v,
		UID:           &stubNumberID{next: 100},
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
		Enforcer:      testEnforcer(t),
	})

	return &fixture{uc: uc, db: db, msg: msg, clock: clk}
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
