package audit

import "time"

// AccessLog records one capability decision for diagnostics.
type AccessLog struct {
	Timestamp  time.Time `json:"timestamp"`
	SubjectKey string    `json:"subject_key"`
	Capability string    `json:"capability"`
	ResourceID string    `json:"resource_id"`
	Granted    bool      `json:"granted"`
	Groups     []string  `json:"groups,omitempty"`
}
