package entity

type Gender int16

const (
	GenderUnknown Gender = 0
	GenderFemale  Gender = 1
	GenderMale    Gender = 2
	GenderOther   Gender = 3
)

func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "Female"
	case GenderMale:
		return "Male"
	case GenderOther:
		return "Other"
	default:
		return "Unknown"
	}
}

func GenderFromString(str string) Gender {
	switch str {
	case "Female":
		return GenderFemale
	case "Male":
		return GenderMale
	case "Other":
		return GenderOther
	default:
		return GenderUnknown
	}
}
