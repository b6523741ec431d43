package ports

// ParamsValidator checks typed parameters before they are encoded for the engine.
// Failures are *errors.ValidationError values.
type ParamsValidator interface {
	// Validate checks the struct tags of params.
	Validate(params any) error
	// Var checks a single value against tag, reporting it as field.
	Var(field string, value any, tag string) error
	// Decode unmarshals JSON data into target and validates it.
	Decode(data []byte, target any) error
}
