package checkout

import "fmt"

// ProcessorError is a non-2xx answer from the processor, preserved with
// its upstream code so operators can match it against processor docs.
type ProcessorError struct {
	Code       string
	Message    string
	StatusCode int
}

type ProcessorErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}
