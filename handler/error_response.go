package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the ErrorHandler configured on Wrap, which logs it and
// writes the JSON error envelope.
func Error(err error) Response {
	if err == nil {
		err = ErrInternalServer
	}
	return errorResponse{err: err}
}
