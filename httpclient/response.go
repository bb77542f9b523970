package httpclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type BasicAuth struct {
	Username string
	Password string
}

// Request is a fully qualified request. URL must be absolute.
type Request struct {
	Method    string
	URL       string
	Header    map[string]string
	Body      []byte
	BasicAuth *BasicAuth
}

type Response struct {
	StatusCode int
	Status     string
	Body       []byte
	Header     http.Header
	RequestID  string
	Latency    time.Duration
}

// StatusMessage is the reason phrase of the status line, e.g. "Not Found".
func (r *Response) StatusMessage() string {
	msg := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if msg == "" {
		return http.StatusText(r.StatusCode)
	}

	return msg
}
