package engine

// State is a node's position in the activation state machine.
type State int32

const (
	// Inactive is the initial and deactivated terminal state.
	Inactive State = iota
	// PendingActivation means the visual flip happened but the authoritative
	// commit has not.
	PendingActivation
	// Active is the activated terminal state.
	Active
	// PendingDeactivation mirrors PendingActivation for deactivation.
	PendingDeactivation
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case PendingActivation:
		return "pending_activation"
	case Active:
		return "active"
	case PendingDeactivation:
		return "pending_deactivation"
	default:
		return "unknown"
	}
}

// terminal collapses a pending state to its terminal state. Terminal states
// map to themselves.
func (s State) terminal() State {
	switch s {
	case PendingActivation:
		return Active
	case PendingDeactivation:
		return Inactive
	default:
		return s
	}
}
