package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(New(Conflict, "busy")); got != Conflict {
		t.Errorf("KindOf: got %v, want Conflict", got)
	}
	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Errorf("KindOf plain error: got %v, want Unknown", got)
	}
	if got := KindOf(nil); got != Unknown {
		t.Errorf("KindOf nil: got %v, want Unknown", got)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := New(NotFound, "user not found")
	outer := fmt.Errorf("loading profile: %w", inner)
	if got := KindOf(outer); got != NotFound {
		t.Errorf("KindOf through fmt wrap: got %v, want NotFound", got)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(PartialConsistency, "repointing member", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !IsKind(err, PartialConsistency) {
		t.Error("kind lost on wrap")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(Unauthorized, "x"), http.StatusUnauthorized},
		{New(Forbidden, "x"), http.StatusForbidden},
		{New(NotFound, "x"), http.StatusNotFound},
		{New(Validation, "x"), http.StatusBadRequest},
		{New(Conflict, "x"), http.StatusConflict},
		{New(PartialConsistency, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v): got %d, want %d", tt.err, got, tt.want)
		}
	}
}
