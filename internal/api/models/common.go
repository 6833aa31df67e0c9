// Package models defines request and response types for the zoneinv REST API.
// Zone, environment and server bodies use the inventory types directly.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// MessageResponse is returned by every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
	// ID is the document id, set on zone creation.
	ID string `json:"id,omitempty"`
}
