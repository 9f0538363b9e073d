// Package api defines the request and response shapes shared by the
// registry HTTP handlers and clients.
package api

import (
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// AuthorizationHeader carries the bearer token identifying the caller.
const AuthorizationHeader = "Authorization"

// CreateEventRequest registers a new event.
type CreateEventRequest struct {
	Name      string `json:"name"`
	Organizer string `json:"organizer"`
	MaxSupply uint64 `json:"max_supply"`
	BaseURI   string `json:"base_uri"`
}

// CreateEventResponse returns the newly assigned event ID.
type CreateEventResponse struct {
	EventID interfaces.EventID `json:"event_id"`
}

// UpdateEventRequest overwrites an event's mutable fields.
type UpdateEventRequest struct {
	Name      string `json:"name"`
	MaxSupply uint64 `json:"max_supply"`
	BaseURI   string `json:"base_uri"`
	Active    bool   `json:"active"`
}

// MintTicketRequest mints a ticket against an event.
type MintTicketRequest struct {
	EventID interfaces.EventID `json:"event_id"`
	To      string             `json:"to"`
	URI     string             `json:"uri,omitempty"`
}

// MintTicketResponse returns the newly assigned ticket ID.
type MintTicketResponse struct {
	TicketID interfaces.TicketID `json:"ticket_id"`
}

// TransferRequest moves ticket ownership.
type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ApproveRequest sets or clears a transfer delegate. An empty delegate
// clears the approval.
type ApproveRequest struct {
	Delegate string `json:"delegate"`
}

// SetTicketURIRequest overwrites a ticket's explicit metadata URI. An empty
// URI restores the base-URI fallback.
type SetTicketURIRequest struct {
	URI string `json:"uri"`
}

// RoleRequest grants or revokes a role.
type RoleRequest struct {
	Role      string `json:"role"`
	Principal string `json:"principal"`
}

// TicketResponse is the public view of a ticket, including its resolved
// metadata URI.
type TicketResponse struct {
	Ticket      interfaces.Ticket `json:"ticket"`
	ResolvedURI string            `json:"resolved_uri"`
}

// TotalsResponse reports the monotonic issued-ID counters.
type TotalsResponse struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	TotalEvents  uint64 `json:"total_events"`
	TotalTickets uint64 `json:"total_tickets"`
}

// StoreMetadataResponse returns the location of a published metadata
// document, for use as a mint or base URI.
type StoreMetadataResponse struct {
	URI string `json:"uri"`
}

// NotificationRecord is one entry of the notification log snapshot.
type NotificationRecord struct {
	Kind    string                  `json:"kind"`
	Payload interfaces.Notification `json:"payload"`
}

// ErrorResponse carries a failure in a machine-readable shape. The message
// always identifies the taxonomy kind of the failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
