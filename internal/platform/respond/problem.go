package respond

import (
	"fmt"
	"net/http"
)

// ProblemDetails is an RFC 9457 problem document.
type ProblemDetails struct {
	Type     string        `json:"type"               cbor:"type"`
	Title    string        `json:"title"              cbor:"title"`
	Status   int           `json:"status"             cbor:"status"`
	Detail   string        `json:"detail,omitempty"   cbor:"detail,omitempty"`
	Instance string        `json:"instance,omitempty" cbor:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"   cbor:"errors,omitempty"`
}

// ErrorDetail is a single field-level error.
type ErrorDetail struct {
	Message  string `json:"message"            cbor:"message"`
	Location string `json:"location,omitempty" cbor:"location,omitempty"`
	Value    string `json:"value,omitempty"    cbor:"value,omitempty"`
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
	}
	return fmt.Sprintf("%d %s", p.Status, p.Title)
}

// StatusCode lets echo pick up the status when the problem is returned as
// a handler error.
func (p *ProblemDetails) StatusCode() int {
	return p.Status
}

// NewError builds an about:blank problem for status.
func NewError(status int, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

func Error400(detail string) *ProblemDetails { return NewError(http.StatusBadRequest, detail) }
func Error401(detail string) *ProblemDetails { return NewError(http.StatusUnauthorized, detail) }
func Error404(detail string) *ProblemDetails { return NewError(http.StatusNotFound, detail) }
func Error500(detail string) *ProblemDetails { return NewError(http.StatusInternalServerError, detail) }
func Error503(detail string) *ProblemDetails { return NewError(http.StatusServiceUnavailable, detail) }

// Error422 carries optional field-level errors.
func Error422(detail string, fields ...ErrorDetail) *ProblemDetails {
	p := NewError(http.StatusUnprocessableEntity, detail)
	p.Errors = fields
	return p
}
