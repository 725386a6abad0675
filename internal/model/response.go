package model

// Response is the envelope every API endpoint returns.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data any) Response[any] {
	return Response[any]{Success: true, Data: data}
}

// NewErrorResponse creates a failed envelope.
func NewErrorResponse(message string) Response[any] {
	return Response[any]{Success: false, Error: message}
}
