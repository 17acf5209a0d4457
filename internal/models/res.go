package models

// ApiResponse is the envelope every backend endpoint answers with.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// ErrorResponse fills both message and error; the client reads message.
func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: err,
		Error:   err,
	}
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Email   string `json:"email,omitempty"`
}

type ProfileResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

type BookingResponse struct {
	Success bool `json:"success"`
	BookingOrder
}
