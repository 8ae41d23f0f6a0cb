package apperr

// Failure is the uniform failure envelope returned across the protocol
// boundary.
type Failure struct {
	Success bool      `json:"success" yaml:"success"`
	Error   ErrorBody `json:"error"   yaml:"error"`
}

// ErrorBody is the error part of a Failure.
type ErrorBody struct {
	Code    Code    `json:"code"    yaml:"code"`
	Message string  `json:"message" yaml:"message"`
	Details Details `json:"details" yaml:"details"`
}

// Envelope converts err into a Failure. Unclassified errors are reported as
// UNKNOWN_ERROR so no raw failure crosses the boundary.
func Envelope(err error) Failure {
	e := From(err)
	if e == nil {
		e = New(UnknownError, "unknown error", nil)
	}
	details := e.Details
	if details == nil {
		details = Details{}
	}
	return Failure{
		Success: false,
		Error: ErrorBody{
			Code:    e.Code,
			Message: e.Message,
			Details: details,
		},
	}
}
