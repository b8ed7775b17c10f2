package types

import "fmt"

// InputError indicates invalid scoring input, such as a job requirement with
// no expected skills. It is the only error class that crosses the engine
// boundary; all signal failures are absorbed by fallbacks.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
