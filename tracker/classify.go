package tracker

import (
	"net/http"

	"github.com/andyle182810/gtracker/resource"
	"github.com/andyle182810/gtracker/xmlcodec"
)

// Classify maps a raw response status onto the error taxonomy. Status codes
// outside the table return nil and the response is decoded as a success.
func Classify(statusCode int, statusMessage string, body []byte) error {
	kind := kindForStatus(statusCode)
	if kind == 0 {
		return nil
	}

	apiErr := &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Status:     statusMessage,
		Message:    "",
		Body:       "",
		Errors:     nil,
	}

	switch kind {
	case KindBadRequest:
		apiErr.Message = parseErrorDocument(body).Get("message").Str()
	case KindUnauthorized:
		apiErr.Body = string(body)
	case KindResourceInvalid, KindInformPivotal:
		apiErr.Errors = errorMessages(parseErrorDocument(body).Get("errors"))
	case KindGeneral, KindResourceNotFound, KindUnavailable:
	}

	return apiErr
}

func kindForStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindGeneral
	case http.StatusNotFound:
		return KindResourceNotFound
	case http.StatusUnprocessableEntity:
		return KindResourceInvalid
	case http.StatusInternalServerError:
		return KindInformPivotal
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return KindUnavailable
	default:
		return 0
	}
}

// parseErrorDocument returns the root element's content. Error bodies are often
// HTML or empty, so a parse failure yields Null.
func parseErrorDocument(body []byte) resource.Value {
	doc, err := xmlcodec.Parse(string(body))
	if err != nil {
		return resource.Null()
	}

	keys := doc.Keys()
	if len(keys) == 0 {
		return resource.Null()
	}

	if keys[0] == "errors" || keys[0] == "message" {
		return doc
	}

	return doc.Get(keys[0])
}

func errorMessages(value resource.Value) []string {
	switch value.Kind() {
	case resource.KindString:
		return []string{value.Str()}
	case resource.KindList:
		var messages []string
		for _, item := range value.Items() {
			messages = append(messages, errorMessages(item)...)
		}

		return messages
	case resource.KindMap:
		return errorMessages(value.Get("error"))
	case resource.KindNull:
	}

	return nil
}
