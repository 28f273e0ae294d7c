package util

import (
	"fmt"

	"github.com/dev-tanmaydas/custos/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateAccessRequest(req model.AccessRequest) error {
	if req.ResourceID == "" {
		return fmt.Errorf("resource id cannot be empty")
	}
	// Capability names beyond the built-in tiers are legal: rule
	// registrars may add their own. Unregistered names are denied, not
	// rejected.
	if req.Capability == "" {
		return fmt.Errorf("capability cannot be empty")
	}
	if req.Subject != nil && req.Subject.Key == "" {
		return fmt.Errorf("subject key cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateSubject(subject model.Subject) error {
	if subject.Key == "" {
		return fmt.Errorf("subject key cannot be empty")
	}
	for _, g := range subject.Groups {
		if g == "" {
			return fmt.Errorf("subject group names cannot be empty")
		}
	}
	return nil
}
