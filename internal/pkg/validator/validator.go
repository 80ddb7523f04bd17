package validator

// Validator validates a struct based on its validate tags.
type Validator interface {
	// Validate returns nil when data passes validation, otherwise an error
	// describing the failing fields.
	Validate(data any) error
}
