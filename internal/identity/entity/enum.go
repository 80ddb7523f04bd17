package entity

type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleDoctor mean the user is a physician who owns patient records.
	RoleDoctor Role = 1

	// RoleNurse mean the user is a nurse assigned to patients by doctors.
	RoleNurse Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleDoctor:
		return "DOCTOR"
	case RoleNurse:
		return "NURSE"
	default:
		return "Unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleDoctor, RoleNurse:
		return false
	default:
		return true
	}
}

func RoleFromString(str string) Role {
	switch str {
	case "DOCTOR":
		return RoleDoctor
	case "NURSE":
		return RoleNurse
	default:
		return RoleUnknown
	}
}
