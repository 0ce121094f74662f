// internal/app/system/envelope/envelope.go
package envelope

import (
	"encoding/json"
	"net/http"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
)

// Envelope is the uniform mutation result shape. Success carries Data;
// failure carries Errors.Message. No handler returns anything else.
type Envelope struct {
	Failed bool       `json:"failed"`
	Data   any        `json:"data,omitempty"`
	Errors *ErrorList `json:"errors,omitempty"`
}

// ErrorList holds the user-facing failure messages.
type ErrorList struct {
	Message []string `json:"message"`
}

// OK wraps data in a success envelope.
func OK(data any) Envelope {
	return Envelope{Failed: false, Data: data}
}

// Fail builds a failure envelope from one or more messages.
func Fail(messages ...string) Envelope {
	return Envelope{Failed: true, Errors: &ErrorList{Message: messages}}
}

// FromError converts any error into a failure envelope. Classified errors
// surface their message; unclassified (and partial-consistency) errors are
// reported generically so internals do not leak to the client.
func FromError(err error) Envelope {
	switch apperr.KindOf(err) {
	case apperr.Unknown, apperr.PartialConsistency:
		return Fail("something went wrong, please try again")
	default:
		return Fail(err.Error())
	}
}

// WriteOK writes a success envelope as JSON.
func WriteOK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, OK(data))
}

// WriteError writes a failure envelope with the status mapped from err.
func WriteError(w http.ResponseWriter, err error) {
	write(w, apperr.HTTPStatus(err), FromError(err))
}

// WriteFail writes a failure envelope with an explicit status and messages.
func WriteFail(w http.ResponseWriter, status int, messages ...string) {
	write(w, status, Fail(messages...))
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
