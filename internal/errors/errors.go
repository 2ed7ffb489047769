package gerr

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// Error is an error with a fixed client facing message and HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUnauthorized    = &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden       = &Error{Status: http.StatusForbidden, Message: "Forbidden"}
	ErrTooManyRequests = &Error{Status: http.StatusTooManyRequests, Message: "Too many requests"}
	ErrAnalyticsFailed = &Error{Status: http.StatusInternalServerError, Message: "Failed to fetch analytics"}
	ErrStatsFailed     = &Error{Status: http.StatusInternalServerError, Message: "Failed to fetch stats"}
	ErrInternal        = &Error{Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// StatusOf returns the HTTP status and message for err. Errors that are not
// an *Error map to ErrInternal so that details never reach the client.
func StatusOf(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Message
	}
	return ErrInternal.Status, ErrInternal.Message
}

// ErrResponse is the JSON body written for a failed request.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	ErrorText      string `json:"error"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// Render writes err as {"error": message} with its mapped status.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := StatusOf(err)
	if rerr := render.Render(w, r, &ErrResponse{HTTPStatusCode: code, ErrorText: msg}); rerr != nil {
		http.Error(w, msg, code)
	}
}
