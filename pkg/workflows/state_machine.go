package workflows

import "labelverse/contributor-portal/portal-console/internal/models"

// StateMachine enforces allowed status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewDatasetStateMachine returns the transitions an operator may apply to a
// dataset. COMPLETED is set by the backend when the sample goal is reached
// and is terminal from the client's perspective.
func NewDatasetStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			string(models.DatasetActive):    {string(models.DatasetClosed)},
			string(models.DatasetClosed):    {string(models.DatasetActive)},
			string(models.DatasetCompleted): {},
		},
	}
}

// NewVerificationStateMachine returns the transitions a reviewer may apply
// to a contribution. VERIFIED and REJECTED are terminal.
func NewVerificationStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			string(models.VerificationPending):  {string(models.VerificationVerified), string(models.VerificationRejected)},
			string(models.VerificationVerified): {},
			string(models.VerificationRejected): {},
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

// ToggleTarget returns the status an ACTIVE/CLOSED toggle moves a dataset
// to. The toggle is not offered for COMPLETED (or unknown) datasets.
func ToggleTarget(status models.DatasetStatus) (models.DatasetStatus, bool) {
	switch status {
	case models.DatasetActive:
		return models.DatasetClosed, true
	case models.DatasetClosed:
		return models.DatasetActive, true
	default:
		return status, false
	}
}
