package lifecycle

// State represents a report's position in the approval lifecycle
type State string

const (
	StateSubmitted State = "SUBMITTED"
	StateApproved  State = "APPROVED"
	StateRejected  State = "REJECTED"
)

var validStates = map[State]bool{
	StateSubmitted: true,
	StateApproved:  true,
	StateRejected:  true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid lifecycle state
func (s State) IsValid() bool {
	return validStates[s]
}

// Decided returns true once an approval decision has been recorded
func (s State) Decided() bool {
	return s == StateApproved || s == StateRejected
}
