package registry

import (
	"fmt"
	"log/slog"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/metrics"
)

// MintTicket creates a ticket for an active event and assigns it to the
// recipient. Callable by the event's organizer, a general organizer, or an
// administrator.
func (r *Registry) MintTicket(caller interfaces.Principal, eventID interfaces.EventID, to interfaces.Principal, uri string) (interfaces.TicketID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[eventID]
	if !ok {
		return 0, fmt.Errorf("%w: event %s", interfaces.ErrNotFound, eventID)
	}
	if !event.Active {
		return 0, fmt.Errorf("%w: event %s", interfaces.ErrInactiveResource, eventID)
	}
	if !r.canManageEvent(caller, event) && !r.hasRole(interfaces.RoleOrganizer, caller) {
		return 0, fmt.Errorf("%w: caller may not mint tickets for event %s", interfaces.ErrUnauthorized, eventID)
	}
	if to.IsZero() {
		return 0, fmt.Errorf("%w: recipient must not be the zero principal", interfaces.ErrInvalidArgument)
	}
	if event.SoldOut() {
		return 0, fmt.Errorf("%w: event %s minted %d of %d", interfaces.ErrCapacityExceeded, eventID, event.Minted, event.MaxSupply)
	}

	r.lastTicketID++
	id := r.lastTicketID
	r.tickets[id] = &interfaces.Ticket{
		ID:      id,
		Owner:   to,
		EventID: eventID,
		URI:     uri,
	}
	event.Minted++

	metrics.TicketsMinted.Inc()
	r.emit(interfaces.TicketMinted{EventID: eventID, TicketID: id, To: to, URI: uri})
	r.log.Info("ticket minted",
		slog.String("ticketID", id.String()),
		slog.String("eventID", eventID.String()),
		slog.String("to", to.String()))

	return id, nil
}

// RevokeTicket destroys the ticket's ownership record and frees its slot in
// the event's supply count. The ID is retired, never reused. Callable by
// the owning event's organizer or an administrator.
func (r *Registry) RevokeTicket(caller interfaces.Principal, id interfaces.TicketID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	event := r.events[ticket.EventID]
	if !r.canManageEvent(caller, event) {
		return fmt.Errorf("%w: caller may not revoke ticket %s", interfaces.ErrUnauthorized, id)
	}

	delete(r.tickets, id)
	// Clamp rather than error: a redundant decrement must never drive the
	// counter below zero.
	if event.Minted > 0 {
		event.Minted--
	}

	metrics.TicketsRevoked.Inc()
	r.emit(interfaces.TicketRevoked{TicketID: id, EventID: ticket.EventID})
	r.log.Info("ticket revoked",
		slog.String("ticketID", id.String()),
		slog.String("eventID", ticket.EventID.String()))

	return nil
}

// SetTicketURI overwrites the ticket's explicit metadata URI. The empty
// string is a valid overwrite and restores the base-URI fallback. Same
// authorization as RevokeTicket.
func (r *Registry) SetTicketURI(caller interfaces.Principal, id interfaces.TicketID, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	if !r.canManageEvent(caller, r.events[ticket.EventID]) {
		return fmt.Errorf("%w: caller may not set the URI of ticket %s", interfaces.ErrUnauthorized, id)
	}

	ticket.URI = uri
	r.log.Info("ticket URI set",
		slog.String("ticketID", id.String()),
		slog.String("uri", uri))
	return nil
}

// TicketURI resolves a ticket's metadata location: the explicit URI when
// set, otherwise the owning event's BaseURI concatenated with the decimal
// ticket ID, otherwise the empty string.
func (r *Registry) TicketURI(id interfaces.TicketID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return "", fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	if ticket.URI != "" {
		return ticket.URI, nil
	}

	event := r.events[ticket.EventID]
	if event.BaseURI == "" {
		return "", nil
	}
	return event.BaseURI + id.String(), nil
}

// Approve designates a delegate allowed to transfer the ticket on the
// owner's behalf. Only the owner or an administrator may approve; a zero
// delegate clears the approval.
func (r *Registry) Approve(caller interfaces.Principal, id interfaces.TicketID, delegate interfaces.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	if caller != ticket.Owner && !r.hasRole(interfaces.RoleAdmin, caller) {
		return fmt.Errorf("%w: only the owner may approve a delegate for ticket %s", interfaces.ErrUnauthorized, id)
	}

	ticket.Approved = delegate
	r.emit(interfaces.TicketApproved{TicketID: id, Owner: ticket.Owner, Approved: delegate})
	r.log.Info("ticket approval set",
		slog.String("ticketID", id.String()),
		slog.String("approved", delegate.String()))
	return nil
}

// Transfer moves ticket ownership from its current owner to a new one. The
// caller must be the owner, the approved delegate, or an administrator, and
// from must match the current owner. Self-transfer succeeds as a no-op that
// still emits a notification. Any approval is cleared.
func (r *Registry) Transfer(caller interfaces.Principal, id interfaces.TicketID, from, to interfaces.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	if from != ticket.Owner {
		return fmt.Errorf("%w: %s is not the owner of ticket %s", interfaces.ErrUnauthorized, from, id)
	}
	if caller != ticket.Owner && caller != ticket.Approved && !r.hasRole(interfaces.RoleAdmin, caller) {
		return fmt.Errorf("%w: caller may not transfer ticket %s", interfaces.ErrUnauthorized, id)
	}
	if to.IsZero() {
		return fmt.Errorf("%w: recipient must not be the zero principal", interfaces.ErrInvalidArgument)
	}

	ticket.Owner = to
	ticket.Approved = interfaces.Principal{}

	metrics.TicketsTransferred.Inc()
	r.emit(interfaces.TicketTransferred{TicketID: id, From: from, To: to})
	r.log.Info("ticket transferred",
		slog.String("ticketID", id.String()),
		slog.String("from", from.String()),
		slog.String("to", to.String()))

	return nil
}

// Ticket returns a copy of the ticket record.
func (r *Registry) Ticket(id interfaces.TicketID) (interfaces.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return interfaces.Ticket{}, fmt.Errorf("%w: ticket %s", interfaces.ErrNotFound, id)
	}
	return *ticket, nil
}

// TotalTickets returns the number of ticket IDs issued so far. Revoked
// tickets still count toward this total since IDs are never reused.
func (r *Registry) TotalTickets() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.lastTicketID)
}

// canManageEvent reports whether the caller is the event's organizer or an
// administrator. Expects the lock to be held.
func (r *Registry) canManageEvent(caller interfaces.Principal, event *interfaces.Event) bool {
	return caller == event.Organizer || r.hasRole(interfaces.RoleAdmin, caller)
}
