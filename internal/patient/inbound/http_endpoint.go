package inbound

import (
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/patient/usecase"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for patient record workflows.
type HTTPEndpoint struct {
	uc uc
}

func parseDateOfBirth(raw string) (time.Time, error) {
	dob, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("date_of_birth must be formatted as YYYY-MM-DD")
	}
	return dob, nil
}

// PatientCreate registers a new patient owned by the calling doctor.
// @Summary Create patient
// @Description Creates a patient record owned by the authenticated doctor.
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body PatientCreateRequest true "Patient payload"
// @Success 200 {object} router.successResponse{data=PatientResponse} "Created patient"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 409 {object} router.errorResponse "Medical record number already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients [post]
func (h *HTTPEndpoint) PatientCreate(r *router.Request) (any, error) {
	var req PatientCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.PatientCreate(r.Context(), usecase.PatientCreateInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DateOfBirth:         dob,
		Gender:              entity.GenderFromString(req.Gender),
		MedicalRecordNumber: req.MedicalRecordNumber,
		Notes:               req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return newPatientResponse(resp.Patient), nil
}

// PatientList returns patients visible to the caller.
// @Summary List patients
// @Description Doctors see patients they own, nurses see patients they are assigned to.
// @Tags Patient
// @Produce json
// @Param search query string false "Search by name or medical record number"
// @Param size query int false "Page size (default 20)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} router.successResponse{data=PatientListResponse} "Patient list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients [get]
func (h *HTTPEndpoint) PatientList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.PatientList(r.Context(), usecase.PatientListInput{
		Search: r.GetQuery("search"),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return PatientListResponse{
		Patients: lo.Map(resp.Patients, func(p entity.Patient, _ int) PatientResponse {
			return newPatientResponse(p)
		}),
		Total: resp.Total,
		Size:  resp.Size,
		Page:  resp.Page,
	}, nil
}

// PatientDetail returns one patient record.
// @Summary Patient detail
// @Description Returns a patient the caller owns or is assigned to.
// @Tags Patient
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} router.successResponse{data=PatientResponse} "Patient detail"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id} [get]
func (h *HTTPEndpoint) PatientDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.PatientDetail(r.Context(), usecase.PatientDetailInput{PatientID: id})
	if err != nil {
		return nil, err
	}

	return newPatientResponse(resp.Patient), nil
}

// PatientUpdate modifies patient demographics.
// @Summary Update patient
// @Description Updates a patient record. Only the owning doctor may update.
// @Tags Patient
// @Accept json
// @Param id path int true "Patient ID"
// @Param request body PatientUpdateRequest true "Patient payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id} [put]
func (h *HTTPEndpoint) PatientUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PatientUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	if err := h.uc.PatientUpdate(r.Context(), usecase.PatientUpdateInput{
		PatientID:   id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Gender:      entity.GenderFromString(req.Gender),
		Notes:       req.Notes,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// PatientAssign links a nurse to a patient.
// @Summary Assign nurse
// @Description Assigns a nurse to a patient and notifies the nurse by email.
// @Tags Patient
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body PatientAssignRequest true "Assignment payload"
// @Success 200 {object} router.successResponse{data=PatientAssignResponse} "Assignment result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient or nurse not found"
// @Failure 409 {object} router.errorResponse "Nurse already assigned"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id}/assign [post]
func (h *HTTPEndpoint) PatientAssign(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PatientAssignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PatientAssign(r.Context(), usecase.PatientAssignInput{
		PatientID: id,
		NurseID:   req.NurseID,
	})
	if err != nil {
		return nil, err
	}

	return PatientAssignResponse{AssignmentID: resp.AssignmentID}, nil
}

// NurseList returns active nurses available for assignment.
// @Summary List nurses
// @Description Returns active nurses that can be assigned to patients.
// @Tags Patient
// @Produce json
// @Success 200 {object} router.successResponse{data=NurseListResponse} "Nurse list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not allowed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/nurses [get]
func (h *HTTPEndpoint) NurseList(r *router.Request) (any, error) {
	resp, err := h.uc.NurseList(r.Context())
	if err != nil {
		return nil, err
	}

	return NurseListResponse{
		Nurses: lo.Map(resp.Nurses, func(n entity.Nurse, _ int) NurseResponse {
			return NurseResponse{
				ID:        n.ID,
				Username:  n.Username,
				Email:     n.Email,
				FirstName: n.FirstName,
				LastName:  n.LastName,
			}
		}),
	}, nil
}
