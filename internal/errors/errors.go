package errors

// ErrorResponse is the only error shape exposed to clients: a bare message.
type ErrorResponse struct {
	Error string `json:"error"`
}
