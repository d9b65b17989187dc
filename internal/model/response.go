package model

// Response is the JSON envelope for mutations and failures. List endpoints
// return their result arrays directly.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewErrorResponse builds an error envelope with an optional detail string
func NewErrorResponse(message, detail string) Response {
	return Response{Success: false, Message: message, Error: detail}
}
