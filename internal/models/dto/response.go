package dto

// Response is the envelope of every API response.
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

func OK(message string, data interface{}) Response {
	return Response{Status: true, Message: message, Data: data}
}

func Fail(code, message string, details interface{}) Response {
	return Response{Status: false, Error: code, Message: message, Details: details}
}
