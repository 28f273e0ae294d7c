package model

import "time"

// AccessRequest asks whether a subject holds a capability on a resource.
// A nil Subject means an anonymous guest.
type AccessRequest struct {
	Subject    *Subject `json:"subject,omitempty"`
	Capability string   `json:"capability"`
	ResourceID string   `json:"resource_id"`
}

// AccessDecision is the outcome of one capability check.
type AccessDecision struct {
	Granted     bool      `json:"granted"`
	Capability  string    `json:"capability"`
	ResourceID  string    `json:"resource_id"`
	SubjectKey  string    `json:"subject_key"`
	Groups      []string  `json:"groups"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}
