package interfaces

// Notification is an append-only structured record describing one completed
// mutation. The registry emits exactly one notification per successful
// mutation, in completion order, and none on failure.
type Notification interface {
	// Kind returns the notification type tag used by external consumers to
	// dispatch on record shape.
	Kind() string
}

// Sink consumes notifications. Emit is called synchronously at the end of
// each successful mutation while the registry lock is held, so
// implementations must not block.
type Sink interface {
	Emit(n Notification)
}

// EventCreated is emitted when a new event is registered.
type EventCreated struct {
	EventID   EventID   `json:"event_id"`
	Name      string    `json:"name"`
	Organizer Principal `json:"organizer"`
	MaxSupply uint64    `json:"max_supply"`
}

// Kind implements Notification.
func (EventCreated) Kind() string { return "event_created" }

// EventUpdated is emitted when an event record is overwritten.
type EventUpdated struct {
	EventID EventID `json:"event_id"`
}

// Kind implements Notification.
func (EventUpdated) Kind() string { return "event_updated" }

// TicketMinted is emitted when a ticket is created.
type TicketMinted struct {
	EventID  EventID   `json:"event_id"`
	TicketID TicketID  `json:"ticket_id"`
	To       Principal `json:"to"`
	URI      string    `json:"uri,omitempty"`
}

// Kind implements Notification.
func (TicketMinted) Kind() string { return "ticket_minted" }

// TicketRevoked is emitted when a ticket's ownership record is destroyed.
type TicketRevoked struct {
	TicketID TicketID `json:"ticket_id"`
	EventID  EventID  `json:"event_id"`
}

// Kind implements Notification.
func (TicketRevoked) Kind() string { return "ticket_revoked" }

// TicketTransferred is emitted when ticket ownership changes, including
// no-op self-transfers.
type TicketTransferred struct {
	TicketID TicketID  `json:"ticket_id"`
	From     Principal `json:"from"`
	To       Principal `json:"to"`
}

// Kind implements Notification.
func (TicketTransferred) Kind() string { return "ticket_transferred" }

// TicketApproved is emitted when a transfer delegate is set or cleared.
type TicketApproved struct {
	TicketID TicketID  `json:"ticket_id"`
	Owner    Principal `json:"owner"`
	Approved Principal `json:"approved"`
}

// Kind implements Notification.
func (TicketApproved) Kind() string { return "ticket_approved" }
