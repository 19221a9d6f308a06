package view

// Response is the envelope of every API payload.
type Response[T any] struct {
	Data    T            `json:"data"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Request any    `json:"request,omitempty"`
}

type MessageResponse struct {
	Data    string `json:"data"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Data    any          `json:"data"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error"`
}

func CreateResponse[T any](data T, err error, req any, message string) Response[T] {
	resp := Response[T]{
		Data:    data,
		Message: message,
	}
	if err != nil {
		resp.Error = &ErrorDetail{
			Message: err.Error(),
			Request: req,
		}
	}
	return resp
}
