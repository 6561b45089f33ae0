package serverutils

// BaseResponse is the envelope every endpoint returns.
type BaseResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) BaseResponse {
	return BaseResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) BaseResponse {
	return BaseResponse{
		Success: false,
		Message: message,
	}
}
