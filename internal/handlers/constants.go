package handlers

const (
	ErrInvalidJSON         = "Invalid request body"
	ErrInvalidPathParam    = "Invalid path parameter"
	ErrTooManyRequests     = "Too many attempts, slow down"
	ErrInternalServerError = "Internal server error"
)
