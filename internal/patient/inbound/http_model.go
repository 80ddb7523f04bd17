package inbound

import (
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
)

const dateOnly = "2006-01-02"

type PatientCreateRequest struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	DateOfBirth         string `json:"date_of_birth"` // YYYY-MM-DD
	Gender              string `json:"gender"`
	MedicalRecordNumber string `json:"medical_record_number"`
	Notes               string `json:"notes"`
}

type PatientUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Gender      string `json:"gender"`
	Notes       string `json:"notes"`
}

type PatientAssignRequest struct {
	NurseID int64 `json:"nurse_id,string"`
}

type PatientAssignResponse struct {
	AssignmentID int64 `json:"assignment_id,string"`
}

func (PatientAssignResponse) Message() string {
	return "Nurse assigned to patient."
}

type PatientResponse struct {
	ID                  int64     `json:"id,string"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	DateOfBirth         string    `json:"date_of_birth"`
	Gender              string    `json:"gender"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	Notes               string    `json:"notes"`
	DoctorID            int64     `json:"doctor_id,string"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func newPatientResponse(p entity.Patient) PatientResponse {
	return PatientResponse{
		ID:                  p.ID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		DateOfBirth:         p.DateOfBirth.Format(dateOnly),
		Gender:              p.Gender.String(),
		MedicalRecordNumber: p.MedicalRecordNumber,
		Notes:               p.Notes,
		DoctorID:            p.DoctorID,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
	Size     int32             `json:"size"`
	Page     int32             `json:"page"`
}

type NurseResponse struct {
	ID        int64  `json:"id,string"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type NurseListResponse struct {
	Nurses []NurseResponse `json:"nurses"`
}
