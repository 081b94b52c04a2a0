// Package api handles incoming HTTP requests, request validation and
// response formatting for the task API. Handlers translate HTTP concerns
// into service calls and map service errors onto status codes; the router
// that mounts them lives in cmd/server.
package api
