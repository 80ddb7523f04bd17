package entity

import (
	"strings"
	"time"
)

type Patient struct {
	ID                  int64
	FirstName           string
	LastName            string
	DateOfBirth         time.Time
	Gender              Gender
	MedicalRecordNumber string
	Notes               string
	DoctorID            int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type Assignment struct {
	ID        int64
	PatientID int64
	NurseID   int64
	CreatedAt time.Time
}

// ---- //

// Nurse is the subset of a user record needed for assignment workflows.
type Nurse struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Active    bool
}

func (n Nurse) FullName() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

type PatientListFilterData struct {
	DoctorID int64
	NurseID  int64
	Search   string
	Size     int32
	Page     int32
}

type NewPatient struct {
	ID                  int64
	FirstName           string
	LastName            string
	DateOfBirth         time.Time
	Gender              Gender
	MedicalRecordNumber string
	Notes               string
	DoctorID            int64
}

type PatchPatient struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      Gender
	Notes       string
}
