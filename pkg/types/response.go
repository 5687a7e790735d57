// Package types holds the JSON envelopes shared by every API response.
package types

// SuccessEnvelope wraps a successful payload as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failure. RequestID lets a customer quote
// the failing call when they report a stuck order at the counter.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorEnvelope wraps an APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
