package inbound

import (
	"time"

	"github.com/careplus/woundtrack/internal/assessment/usecase"
)

type ImageResponse struct {
	ID          int64     `json:"id,string"`
	PatientID   int64     `json:"patient_id,string"`
	UploadedBy  int64     `json:"uploaded_by,string"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newImageResponse(img usecase.ImageWithURL) ImageResponse {
	return ImageResponse{
		ID:          img.Image.ID,
		PatientID:   img.Image.PatientID,
		UploadedBy:  img.Image.UploadedBy,
		ContentType: img.Image.ContentType,
		Size:        img.Image.Size,
		URL:         img.URL,
		CreatedAt:   img.Image.CreatedAt,
	}
}

type ImageListResponse struct {
	Images []ImageResponse `json:"images"`
}

type AssessmentCreateRequest struct {
	Description string   `json:"description"`
	ImageIDs    []string `json:"image_ids"`
}

type AssessmentCreateResponse struct {
	AssessmentID int64 `json:"assessment_id,string"`
}

func (AssessmentCreateResponse) Message() string {
	return "Assessment recorded."
}

type AssessmentResponse struct {
	ID          int64           `json:"id,string"`
	PatientID   int64           `json:"patient_id,string"`
	AuthorID    int64           `json:"author_id,string"`
	Description string          `json:"description"`
	Images      []ImageResponse `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AssessmentListResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}
