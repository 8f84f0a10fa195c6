package model

// Action describes the registration button shown on an event card.
type Action struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// ActionFor derives the card button for e as seen by a viewer. The capacity
// check here is advisory; writes are not blocked by it.
func ActionFor(e *Event, signedIn bool) Action {
	var label string
	switch e.Status {
	case StatusCompleted:
		label = "View Results"
	case StatusOngoing:
		label = "Join Now"
		if e.IsRegistered {
			label = "Leave Event"
		}
	default:
		label = "Register"
		if e.IsRegistered {
			label = "Unregister"
		}
	}

	disabled := !signedIn ||
		e.Status == StatusCompleted ||
		(!e.IsRegistered && e.IsFull())

	return Action{Label: label, Disabled: disabled}
}
