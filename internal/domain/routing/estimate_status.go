package routing

import "fmt"

// EstimateStatus is the lifecycle state of a persisted route estimate. The
// estimate itself is immutable after creation; only the status moves, and only
// at the request of the owning account.
type EstimateStatus string

const (
	StatusActive    EstimateStatus = "active"
	StatusCompleted EstimateStatus = "completed"
	StatusCancelled EstimateStatus = "cancelled"
)

var validTransitions = map[EstimateStatus][]EstimateStatus{
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized estimate status.
func (s EstimateStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if moving from this status to target is allowed.
func (s EstimateStatus) CanTransitionTo(target EstimateStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s EstimateStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s EstimateStatus) String() string {
	return string(s)
}

// ParseEstimateStatus converts a string to an EstimateStatus.
func ParseEstimateStatus(s string) (EstimateStatus, error) {
	status := EstimateStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid estimate status: %s", s)
	}
	return status, nil
}
