package entity

import "time"

type WoundImage struct {
	ID          int64
	PatientID   int64
	UploadedBy  int64
	ObjectKey   string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

type Assessment struct {
	ID          int64
	PatientID   int64
	AuthorID    int64
	Description string
	CreatedAt   time.Time
}

// ---- //

// AssessmentDetail pairs an assessment with its attached images.
type AssessmentDetail struct {
	Assessment Assessment
	Images     []WoundImage
}

type NewAssessment struct {
	ID          int64
	PatientID   int64
	AuthorID    int64
	Description string
	ImageIDs    []int64
}
