package domain

// ValidationVerdict is the result of validating a proposed session.
// IsValid is true iff Errors is empty. Warnings never block.
type ValidationVerdict struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// NewVerdict returns an empty, valid verdict.
func NewVerdict() *ValidationVerdict {
	return &ValidationVerdict{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

func (v *ValidationVerdict) AddError(msg string) {
	v.Errors = append(v.Errors, msg)
	v.IsValid = false
}

func (v *ValidationVerdict) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}
