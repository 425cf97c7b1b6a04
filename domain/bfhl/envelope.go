package bfhl

import "encoding/json"

// Envelope is the uniform JSON wrapper returned by every endpoint.
//
// Data is kept as raw JSON so that legitimate zero results ([] or "" or 0 or
// null) are still emitted on success while the field disappears on failure.
type Envelope struct {
	IsSuccess     bool            `json:"is_success"`
	OfficialEmail string          `json:"official_email,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	Message       string          `json:"message,omitempty"`
}

// Success builds a successful envelope carrying data.
func Success(email string, data json.RawMessage) Envelope {
	return Envelope{IsSuccess: true, OfficialEmail: email, Data: data}
}

// Healthy builds the health check envelope, which carries no data.
func Healthy(email string) Envelope {
	return Envelope{IsSuccess: true, OfficialEmail: email}
}

// Failure builds a failed envelope with the given message.
func Failure(msg string) Envelope {
	return Envelope{IsSuccess: false, Message: msg}
}
