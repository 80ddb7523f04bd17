package inbound

import (
	"strconv"

	"github.com/careplus/woundtrack/internal/assessment/usecase"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for wound image and assessment workflows.
type HTTPEndpoint struct {
	uc uc
}

// ImageUpload stores a wound photo for a patient.
// @Summary Upload wound image
// @Description Accepts a multipart PNG or JPEG upload (field name "image") for a patient.
// @Tags Assessment
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Patient ID"
// @Param image formData file true "Image file"
// @Success 200 {object} router.successResponse{data=ImageResponse} "Stored image"
// @Failure 400 {object} router.errorResponse "Unsupported type or image too large"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id}/images [post]
func (h *HTTPEndpoint) ImageUpload(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("image")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	resp, err := h.uc.ImageUpload(r.Context(), usecase.ImageUploadInput{
		PatientID: id,
		File:      file,
	})
	if err != nil {
		return nil, err
	}

	return newImageResponse(usecase.ImageWithURL{Image: resp.Image}), nil
}

// ImageList returns the patient's wound images with download URLs.
// @Summary List wound images
// @Description Returns wound images for a patient, each with a short-lived signed download URL.
// @Tags Assessment
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} router.successResponse{data=ImageListResponse} "Image list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id}/images [get]
func (h *HTTPEndpoint) ImageList(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ImageList(r.Context(), usecase.ImageListInput{PatientID: id})
	if err != nil {
		return nil, err
	}

	return ImageListResponse{
		Images: lo.Map(resp.Images, func(img usecase.ImageWithURL, _ int) ImageResponse {
			return newImageResponse(img)
		}),
	}, nil
}

// ImageDelete removes a wound image.
// @Summary Delete wound image
// @Description Deletes a wound image. Only the uploader or the patient's doctor may delete.
// @Tags Assessment
// @Param id path int true "Image ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Image not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/images/{id} [delete]
func (h *HTTPEndpoint) ImageDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.ImageDelete(r.Context(), usecase.ImageDeleteInput{ImageID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}

// AssessmentCreate records a wound assessment.
// @Summary Create assessment
// @Description Records an assessment for a patient, optionally attaching uploaded images.
// @Tags Assessment
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body AssessmentCreateRequest true "Assessment payload"
// @Success 200 {object} router.successResponse{data=AssessmentCreateResponse} "Created assessment"
// @Failure 400 {object} router.errorResponse "Invalid request body or image references"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id}/assessments [post]
func (h *HTTPEndpoint) AssessmentCreate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AssessmentCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	imageIDs := make([]int64, 0, len(req.ImageIDs))
	for _, raw := range req.ImageIDs {
		imageID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerror.NewInvalidFormat("image_ids must contain integer values")
		}
		imageIDs = append(imageIDs, imageID)
	}

	resp, err := h.uc.AssessmentCreate(r.Context(), usecase.AssessmentCreateInput{
		PatientID:   id,
		Description: req.Description,
		ImageIDs:    imageIDs,
	})
	if err != nil {
		return nil, err
	}

	return AssessmentCreateResponse{AssessmentID: resp.AssessmentID}, nil
}

// AssessmentList returns assessments for a patient.
// @Summary List assessments
// @Description Returns assessments for a patient, newest first, with attached images.
// @Tags Assessment
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} router.successResponse{data=AssessmentListResponse} "Assessment list"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Patient not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/patients/{id}/assessments [get]
func (h *HTTPEndpoint) AssessmentList(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.AssessmentList(r.Context(), usecase.AssessmentListInput{PatientID: id})
	if err != nil {
		return nil, err
	}

	return AssessmentListResponse{
		Assessments: lo.Map(resp.Assessments, func(a usecase.AssessmentWithImages, _ int) AssessmentResponse {
			return AssessmentResponse{
				ID:          a.Assessment.ID,
				PatientID:   a.Assessment.PatientID,
				AuthorID:    a.Assessment.AuthorID,
				Description: a.Assessment.Description,
				Images: lo.Map(a.Images, func(img usecase.ImageWithURL, _ int) ImageResponse {
					return newImageResponse(img)
				}),
				CreatedAt: a.Assessment.CreatedAt,
			}
		}),
	}, nil
}

// AssessmentDelete removes an assessment.
// @Summary Delete assessment
// @Description Deletes an assessment. Only its author may delete it.
// @Tags Assessment
// @Param id path int true "Assessment ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 404 {object} router.errorResponse "Assessment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/assessments/{id} [delete]
func (h *HTTPEndpoint) AssessmentDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.AssessmentDelete(r.Context(), usecase.AssessmentDeleteInput{AssessmentID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
