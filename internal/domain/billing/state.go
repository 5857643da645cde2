package billing

// State is the lifecycle position of a subscriber, derived from the ledger.
//
//	none -> incomplete -> active <-> canceling -> canceled
type State string

const (
	StateNone       State = "none"
	StateIncomplete State = "incomplete"
	StateActive     State = "active"
	StateCanceling  State = "canceling"
	StateCanceled   State = "canceled"
)

func StateOf(r *SubscriptionRecord) State {
	if r == nil {
		return StateNone
	}
	switch r.Status {
	case StatusActive:
		if r.CancelAtPeriodEnd {
			return StateCanceling
		}
		return StateActive
	case StatusCanceled:
		return StateCanceled
	default:
		return StateIncomplete
	}
}

type Action string

const (
	ActionCheckout   Action = "checkout"
	ActionCancel     Action = "cancel"
	ActionReactivate Action = "reactivate"
)

// AllowedActions lists what the UI may offer for a state. Cancel and
// reactivate additionally need a gateway subscription id, which the
// reconciler checks itself.
func AllowedActions(s State) []Action {
	switch s {
	case StateNone, StateIncomplete, StateCanceled:
		return []Action{ActionCheckout}
	case StateActive:
		return []Action{ActionCancel}
	case StateCanceling:
		return []Action{ActionReactivate}
	default:
		return []Action{}
	}
}

// requireSubscription enforces the precondition shared by cancel and
// reactivate.
func requireSubscription(r *SubscriptionRecord) error {
	if r == nil {
		return NotFoundError("no active subscription")
	}
	if r.SubscriptionID() == "" {
		return IncompleteSubscriptionError()
	}
	return nil
}
