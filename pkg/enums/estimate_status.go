package enums

import "fmt"

// EstimateStatus is the lifecycle label attached to an estimate. No transition
// graph is enforced; any status may be set by any update.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "DRAFT"
	EstimateStatusSent     EstimateStatus = "SENT"
	EstimateStatusApproved EstimateStatus = "APPROVED"
	EstimateStatusRejected EstimateStatus = "REJECTED"
)

var validEstimateStatuses = []EstimateStatus{
	EstimateStatusDraft,
	EstimateStatusSent,
	EstimateStatusApproved,
	EstimateStatusRejected,
}

// IsValid reports whether the value matches the canonical estimate status enum.
func (s EstimateStatus) IsValid() bool {
	for _, candidate := range validEstimateStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseEstimateStatus converts the raw string to EstimateStatus.
func ParseEstimateStatus(value string) (EstimateStatus, error) {
	for _, candidate := range validEstimateStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid estimate status %q", value)
}

func (s EstimateStatus) String() string {
	return string(s)
}
