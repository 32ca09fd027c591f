package lifecycle

// NewReportMachine builds the report approval machine at the given state.
//
// A pending report may be approved or rejected exactly once. Editing is
// permitted from every state and returns the report to SUBMITTED, which
// clears any prior decision (re-approval is required after an edit).
func NewReportMachine(initial State) (StateMachine, error) {
	builder := NewBuilder()
	builder.
		Permit(StateSubmitted, TriggerApprove, StateApproved).
		Permit(StateSubmitted, TriggerReject, StateRejected).
		Permit(StateSubmitted, TriggerEdit, StateSubmitted).
		Permit(StateApproved, TriggerEdit, StateSubmitted).
		Permit(StateRejected, TriggerEdit, StateSubmitted)
	return builder.Build(initial)
}
