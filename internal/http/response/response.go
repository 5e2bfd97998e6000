// Package response contains helper types and functions for building the
// JSON responses of the HTTP handlers. Successful calls answer with
// {"success": true} plus optional data; failures answer with
// {"error": "<message>"}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response describes the standard success body of the server.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse describes the standard failure body of the server.
type ErrorResponse struct {
	Error string `json:"error" example:"project not found"`
}

// OK returns the plain success response.
func OK() Response {
	return Response{Success: true}
}

// OKWithData returns a success response carrying data.
func OKWithData(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Error returns a failure response with the given message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError builds a failure response from validator violations.
// Each violation is rendered as a human-readable message, joined by commas.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of the supported values", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
