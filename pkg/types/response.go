package types

// SuccessEnvelope wraps dashboard API success payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body returned by the dashboard API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps dashboard API error payloads.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// WebsiteEnvelope is the legacy shape the public website consumes for the
// contact and property-detail endpoints.
type WebsiteEnvelope struct {
	Success     bool `json:"success"`
	BackendData any  `json:"backend_data,omitempty"`
}
