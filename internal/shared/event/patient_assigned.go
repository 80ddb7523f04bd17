package event

const PatientAssignedDestination string = "patient_assigned"
const PatientAssignedConsumerNotification string = "patient_assigned_notification"

type PatientAssignedMessage struct {
	AssignmentID int64  `json:"assignment_id"`
	PatientID    int64  `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	NurseID      int64  `json:"nurse_id"`
	NurseEmail   string `json:"nurse_email"`
	NurseName    string `json:"nurse_name"`
	DoctorID     int64  `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
}
