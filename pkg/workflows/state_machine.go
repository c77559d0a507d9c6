package workflows

// StateMachine enforces repair request status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewRepairStateMachine creates the state machine for repair request
// statuses
func NewRepairStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"SUBMITTED":    {"ACKNOWLEDGED", "REJECTED"},
			"ACKNOWLEDGED": {"SCHEDULED", "REJECTED"},
			"SCHEDULED":    {"IN_PROGRESS"},
			"IN_PROGRESS":  {"COMPLETED"},
			"COMPLETED":    {},
			"REJECTED":     {"SUBMITTED"}, // Allow resubmitting rejected requests
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
