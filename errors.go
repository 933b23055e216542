package pypackaging

import "fmt"

// InvalidPolicyValueError is returned when a Python resources policy string
// matches none of the recognized forms.
type InvalidPolicyValueError struct {
	// Value is the rejected input string.
	Value string
}

func (e *InvalidPolicyValueError) Error() string {
	return fmt.Sprintf("invalid value for Python resources policy: %s", e.Value)
}

// InvalidFilterValueError is returned when an extension module filter string
// is not one of the recognized literals.
type InvalidFilterValueError struct {
	// Value is the rejected input string.
	Value string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("%s is not a valid extension module filter", e.Value)
}
