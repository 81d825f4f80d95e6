// Package api implements the HTTP REST API of the Homegate gateway.
//
// This package provides:
//   - Sensor reads, validated sensor writes, and the legacy bulk update
//   - Actuator command status and sending
//   - Notification listing and deletion
//   - Login and logout against the users stored in the document store
//   - Face-recognition result ingest
//   - Health and Prometheus endpoints
//
// # Architecture
//
// Handlers are thin: they decode the request, call a domain service
// (internal/sensor, internal/command, internal/notification, internal/auth,
// internal/facerecog), and map the service error to a status code with
// errors.Is. No handler touches the store directly.
//
// # Errors
//
// Failures are returned as {status, code, message, details}. Validation
// rejections are 400, bad credentials 401, missing temperature 404, and
// any other collaborator failure 500 with the underlying error in details.
// The bulk update reports per-item errors in its own body and answers 207
// when any item failed.
package api
