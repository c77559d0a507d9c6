package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairStateMachineTransitions(t *testing.T) {
	sm := NewRepairStateMachine()

	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{"SUBMITTED", "ACKNOWLEDGED", true},
		{"SUBMITTED", "REJECTED", true},
		{"SUBMITTED", "COMPLETED", false},
		{"ACKNOWLEDGED", "SCHEDULED", true},
		{"ACKNOWLEDGED", "REJECTED", true},
		{"ACKNOWLEDGED", "SUBMITTED", false},
		{"SCHEDULED", "IN_PROGRESS", true},
		{"SCHEDULED", "COMPLETED", false},
		{"IN_PROGRESS", "COMPLETED", true},
		{"IN_PROGRESS", "SCHEDULED", false},
		{"COMPLETED", "SUBMITTED", false},
		{"REJECTED", "SUBMITTED", true},
		{"REJECTED", "COMPLETED", false},
		{"UNKNOWN", "SUBMITTED", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, sm.CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	sm := NewRepairStateMachine()
	assert.Empty(t, sm.GetAllowedTransitions("COMPLETED"))
}

func TestGetAllowedTransitionsUnknownState(t *testing.T) {
	sm := NewRepairStateMachine()
	assert.Empty(t, sm.GetAllowedTransitions("NOT_A_STATE"))
}
