// Package tracker is a client for the Pivotal Tracker v2 XML API.
//
// Every call goes through one pipeline: the request is built from the session
// defaults plus request-local headers, sent by the transport, classified by
// status code, and on success normalized and decoded into resource.Value.
// Failures carry an *APIError whose Kind can be matched with errors.Is against
// ErrBadRequest, ErrUnauthorized, ErrGeneral, ErrResourceNotFound,
// ErrResourceInvalid, ErrInformPivotal or ErrUnavailable.
package tracker
