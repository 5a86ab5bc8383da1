// Package response defines the JSON envelope shared by every HTTP reply.
package response

import (
	"net/http"

	"github.com/yourname/healthcoach/internal"
)

type APIResponse struct {
	Data  interface{}        `json:"data,omitempty"`
	Meta  map[string]any     `json:"meta,omitempty"`
	Error *internal.AppError `json:"error,omitempty"`
}

func Success(data interface{}, meta map[string]any) APIResponse {
	return APIResponse{Data: data, Meta: meta}
}

func BadRequest(msg string) APIResponse {
	return NewAppError(http.StatusBadRequest, msg)
}

// NotFound is what unknown users get; they must send /profile first.
func NotFound(msg string) APIResponse {
	return NewAppError(http.StatusNotFound, msg)
}

func Unprocessable(msg string) APIResponse {
	return NewAppError(http.StatusUnprocessableEntity, msg)
}

// InternalError hides the cause; storage details stay in the server log.
func InternalError(msg string) APIResponse {
	return NewAppError(http.StatusInternalServerError, msg)
}

func NewAppError(status int, msg string) APIResponse {
	return APIResponse{Error: internal.NewAppError(status, msg)}
}
