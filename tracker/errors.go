package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andyle182810/gtracker/httpclient"
)

var (
	ErrBadRequest       = errors.New("tracker: bad request")
	ErrUnauthorized     = errors.New("tracker: unauthorized")
	ErrGeneral          = errors.New("tracker: request refused")
	ErrResourceNotFound = errors.New("tracker: resource not found")
	ErrResourceInvalid  = errors.New("tracker: resource invalid")
	ErrInformPivotal    = errors.New("tracker: internal server error")
	ErrUnavailable      = errors.New("tracker: service unavailable")
)

var (
	// ErrRequestFailed is returned when the request never produced a response.
	ErrRequestFailed  = httpclient.ErrRequestFailed
	ErrDecodeResponse = errors.New("tracker: failed to decode response")
	ErrEncodeBody     = errors.New("tracker: failed to encode request body")
	ErrInvalidConfig  = errors.New("tracker: invalid config")
	ErrInvalidInput   = errors.New("tracker: invalid input")
	ErrCredentials    = errors.New("tracker: failed to obtain api token")
)

// Kind identifies one failure in the closed error taxonomy. The zero Kind means
// the error was not produced by the classifier.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindGeneral
	KindResourceNotFound
	KindResourceInvalid
	KindInformPivotal
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindGeneral:
		return "General"
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindResourceInvalid:
		return "ResourceInvalid"
	case KindInformPivotal:
		return "InformPivotal"
	case KindUnavailable:
		return "Unavailable"
	default:
		return "Unclassified"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindGeneral:
		return ErrGeneral
	case KindResourceNotFound:
		return ErrResourceNotFound
	case KindResourceInvalid:
		return ErrResourceInvalid
	case KindInformPivotal:
		return ErrInformPivotal
	case KindUnavailable:
		return ErrUnavailable
	default:
		return nil
	}
}

// APIError is a classified failure response. Message is set for BadRequest,
// Body for Unauthorized and Errors for ResourceInvalid and InformPivotal.
type APIError struct {
	Kind       Kind
	StatusCode int
	Status     string
	Message    string
	Body       string
	Errors     []string
}

func (e *APIError) Error() string {
	var detail string

	switch e.Kind {
	case KindBadRequest:
		detail = fmt.Sprintf("(%d): %s - %s", e.StatusCode, e.Status, e.Message)
	case KindUnauthorized:
		detail = fmt.Sprintf("(%d): %s - %s", e.StatusCode, e.Status, e.Body)
	case KindResourceInvalid:
		detail = fmt.Sprintf("(%d): %s", e.StatusCode, e.errorList())
	case KindInformPivotal:
		detail = fmt.Sprintf("Pivotal Tracker had an internal error. Please let them know. (%d): %s, %s",
			e.StatusCode, e.Status, e.errorList())
	case KindGeneral, KindResourceNotFound, KindUnavailable:
		detail = fmt.Sprintf("(%d): %s", e.StatusCode, e.Status)
	default:
		detail = fmt.Sprintf("(%d): %s", e.StatusCode, e.Status)
	}

	if sentinel := e.Kind.sentinel(); sentinel != nil {
		return sentinel.Error() + " " + detail
	}

	return "tracker: " + detail
}

func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

func (e *APIError) errorList() string {
	if len(e.Errors) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(e.Errors))
	for _, msg := range e.Errors {
		quoted = append(quoted, fmt.Sprintf("%q", msg))
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// KindOf returns the Kind of a classified error anywhere in err's chain, or the
// zero Kind.
func KindOf(err error) Kind {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Kind
	}

	return 0
}
