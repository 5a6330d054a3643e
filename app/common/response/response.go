package response

// Error bodies crossing the HTTP boundary. Only validation failures (400)
// and unexpected failures (500) use these; every other outcome is a 200
// whose body encodes the condition.

type ValidationError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type InternalError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewValidationError(details string) ValidationError {
	return ValidationError{
		Error:   "Validation error",
		Details: details,
	}
}

func NewInternalError(message string) InternalError {
	return InternalError{
		Error:   "Internal server error",
		Message: message,
	}
}
