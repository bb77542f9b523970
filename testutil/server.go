package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// APIPath matches the path prefix of the real service so client paths can be
// asserted verbatim.
const APIPath = "/services/v2"

type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

type cannedResponse struct {
	status int
	reason string
	body   string
}

// TrackerServer is a fake API that answers with canned XML and records every
// request it receives.
type TrackerServer struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewTrackerServer starts a fake API that is closed when the test ends. Unknown
// routes answer 404.
func NewTrackerServer(t *testing.T) *TrackerServer {
	t.Helper()

	s := &TrackerServer{
		server:    nil,
		mu:        sync.Mutex{},
		responses: make(map[string]cannedResponse),
		requests:  nil,
	}

	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.server.Close)

	return s
}

// BaseURL is the API root to hand to the client.
func (s *TrackerServer) BaseURL() string {
	return s.server.URL + APIPath
}

// Respond answers method and path (relative to the API root) with status and body.
// A path with a query string only matches requests with exactly that raw query
// and takes precedence over the bare path.
func (s *TrackerServer) Respond(method, path string, status int, body string) {
	s.RespondWithReason(method, path, status, "", body)
}

// RespondWithReason is Respond with a custom reason phrase in the status line.
func (s *TrackerServer) RespondWithReason(method, path string, status int, reason, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[routeKey(method, APIPath+path)] = cannedResponse{status: status, reason: reason, body: body}
}

func (s *TrackerServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]RecordedRequest, len(s.requests))
	copy(requests, s.requests)

	return requests
}

// LastRequest fails the test when nothing was received.
func (s *TrackerServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "the fake Tracker server received no requests")

	return requests[len(requests)-1]
}

func (s *TrackerServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     string(body),
	})
	resp, ok := s.responses[routeKey(r.Method, r.URL.Path+"?"+r.URL.RawQuery)]
	if !ok {
		resp, ok = s.responses[routeKey(r.Method, r.URL.Path)]
	}
	s.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusNotFound, reason: "", body: ""}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")

	if resp.reason != "" {
		writeWithReason(w, resp)

		return
	}

	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

// writeWithReason hijacks the connection to send a non-standard status line.
func writeWithReason(w http.ResponseWriter, resp cannedResponse) {
	hijacker, ok := w.(http.Hijacker)
	if !ok {
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)

		return
	}

	conn, buf, err := hijacker.Hijack()
	if err != nil {
		return
	}
	defer conn.Close()

	_, _ = buf.WriteString("HTTP/1.1 " + strconv.Itoa(resp.status) + " " + resp.reason + "\r\n")
	_, _ = buf.WriteString("Content-Type: application/xml; charset=utf-8\r\n")
	_, _ = buf.WriteString("Content-Length: " + strconv.Itoa(len(resp.body)) + "\r\n")
	_, _ = buf.WriteString("Connection: close\r\n\r\n")
	_, _ = buf.WriteString(resp.body)
	_ = buf.Flush()
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
