package interfaces

// TicketingRegistry is the contract implemented by the event/ticket registry
// core. Every mutating operation takes the authenticated caller as its first
// argument and is atomic with respect to all others: either the full state
// transition applies and exactly one notification is emitted, or the state
// is untouched and an error wrapping one of the taxonomy sentinels is
// returned.
type TicketingRegistry interface {
	// Name returns the cosmetic display name given at construction.
	Name() string

	// Symbol returns the cosmetic display symbol given at construction.
	Symbol() string

	// HasRole reports whether the principal holds the role.
	HasRole(role RoleID, principal Principal) bool

	// GrantRole grants a role to a principal. Only administrators may grant
	// roles. Granting an already-held role is a no-op.
	GrantRole(caller Principal, role RoleID, principal Principal) error

	// RevokeRole removes a role from a principal. Only administrators may
	// revoke roles. Revoking a role the principal does not hold is a no-op.
	RevokeRole(caller Principal, role RoleID, principal Principal) error

	// CreateEvent registers a new event and grants the organizer role to its
	// organizer. Administrator only. Returns the newly assigned event ID,
	// strictly increasing from 1.
	CreateEvent(caller Principal, name string, organizer Principal, maxSupply uint64, baseURI string) (EventID, error)

	// UpdateEvent overwrites an event's name, supply limit, base URI, and
	// active flag. The organizer is immutable. Callable by an administrator
	// or the event's organizer. Lowering MaxSupply below the minted count is
	// permitted and freezes further minting.
	UpdateEvent(caller Principal, id EventID, name string, maxSupply uint64, baseURI string, active bool) error

	// Event returns a copy of the event record.
	Event(id EventID) (Event, error)

	// TotalEvents returns the number of event IDs issued so far.
	TotalEvents() uint64

	// MintTicket creates a ticket for an active event and assigns it to the
	// recipient. Callable by the event's organizer, a general organizer, or
	// an administrator. Returns the newly assigned global ticket ID.
	MintTicket(caller Principal, eventID EventID, to Principal, uri string) (TicketID, error)

	// RevokeTicket destroys a ticket's ownership record and frees its slot
	// in the event's supply count. The ticket ID is retired, never reused.
	// Callable by the owning event's organizer or an administrator.
	RevokeTicket(caller Principal, id TicketID) error

	// SetTicketURI overwrites the ticket's explicit metadata URI. An empty
	// string restores the base-URI fallback. Same authorization as
	// RevokeTicket.
	SetTicketURI(caller Principal, id TicketID, uri string) error

	// TicketURI resolves a ticket's metadata location: its explicit URI when
	// set, otherwise the owning event's BaseURI concatenated with the
	// decimal ticket ID, otherwise the empty string.
	TicketURI(id TicketID) (string, error)

	// Approve designates a delegate allowed to transfer the ticket. Only
	// the ticket's owner or an administrator may approve. A zero delegate
	// clears the approval.
	Approve(caller Principal, id TicketID, delegate Principal) error

	// Transfer moves ticket ownership from its current owner to a new one.
	// The caller must be the owner, the approved delegate, or an
	// administrator, and from must match the current owner. Self-transfer
	// succeeds as a no-op. Clears any approval.
	Transfer(caller Principal, id TicketID, from, to Principal) error

	// Ticket returns a copy of the ticket record.
	Ticket(id TicketID) (Ticket, error)

	// TotalTickets returns the number of ticket IDs issued so far, including
	// revoked tickets.
	TotalTickets() uint64
}
