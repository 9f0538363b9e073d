// Package interfaces defines the core interfaces and types for the event
// ticketing registry. It provides the contract between components without
// implementation details.
package interfaces

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Principal is an authenticated identity capable of issuing calls against
// the registry. It is a 20-byte address supplied by the external
// authentication layer; the registry only compares principals for equality.
type Principal [20]byte

// NewPrincipalFromBytes creates a principal from a raw 20-byte slice.
func NewPrincipalFromBytes(b []byte) (Principal, error) {
	if len(b) != 20 {
		return Principal{}, errors.New("invalid principal length: must be 20 bytes")
	}

	var p Principal
	copy(p[:], b)
	return p, nil
}

// NewPrincipalFromHex creates a principal from a hex string, with or without
// the 0x prefix.
func NewPrincipalFromHex(addr string) (Principal, error) {
	if !common.IsHexAddress(addr) {
		return Principal{}, fmt.Errorf("invalid principal %q: must be a 40-char hex address", addr)
	}
	return Principal(common.HexToAddress(addr)), nil
}

// String returns the checksummed hex representation of the principal.
func (p Principal) String() string {
	return common.Address(p).Hex()
}

// Bytes returns the raw 20-byte address.
func (p Principal) Bytes() []byte {
	return p[:]
}

// IsZero reports whether the principal is the zero address ("nobody").
func (p Principal) IsZero() bool {
	return p == Principal{}
}

// MarshalText implements encoding.TextMarshaler so principals render as hex
// strings in JSON payloads.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := NewPrincipalFromHex(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// RoleID identifies a role in the identity and role store.
type RoleID [32]byte

// RoleAdmin is the administrator role with unrestricted rights over all
// events. The zero value mirrors the default admin role of the registry
// contract this service models.
var RoleAdmin = RoleID{}

// RoleOrganizer is the general organizer capability. Holders may mint
// tickets for any event. Per-event organizers are tracked on the event
// record itself, not through this role.
var RoleOrganizer = RoleID(crypto.Keccak256Hash([]byte("ORGANIZER_ROLE")))

// RoleByName resolves a human-readable role name used by the CLI and the
// role management API.
func RoleByName(name string) (RoleID, error) {
	switch strings.ToLower(name) {
	case "admin", "administrator":
		return RoleAdmin, nil
	case "organizer":
		return RoleOrganizer, nil
	default:
		return RoleID{}, fmt.Errorf("unknown role %q", name)
	}
}

// Name returns the human-readable role name, or the hex form for roles the
// registry does not define itself.
func (r RoleID) Name() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOrganizer:
		return "organizer"
	default:
		return fmt.Sprintf("%x", r[:])
	}
}

// EventID identifies an event. IDs are assigned monotonically starting at 1;
// 0 is the "not found" sentinel and is never issued.
type EventID uint64

// String returns the decimal form of the event ID.
func (id EventID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// TicketID identifies a ticket. IDs are global across all events, assigned
// monotonically starting at 1, and never reused after revocation.
type TicketID uint64

// String returns the decimal form of the ticket ID.
func (id TicketID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Event is a ticketed occasion. Events are created by an administrator and
// never deleted; deactivation is the only removal mechanism.
type Event struct {
	ID        EventID   `json:"event_id"`
	Name      string    `json:"name"`
	Organizer Principal `json:"organizer"`

	// MaxSupply limits the number of concurrently minted tickets.
	// Zero means unlimited.
	MaxSupply uint64 `json:"max_supply"`

	// Minted counts tickets attributed to this event that have been minted
	// and not revoked.
	Minted uint64 `json:"minted"`

	// BaseURI is the fallback metadata location template. Tickets without an
	// explicit URI resolve to BaseURI + decimal ticket ID.
	BaseURI string `json:"base_uri"`

	Active bool `json:"active"`
}

// SoldOut reports whether the event has reached its supply limit. An update
// may shrink MaxSupply below Minted; that freezes further minting without
// revoking issued tickets.
func (e Event) SoldOut() bool {
	return e.MaxSupply != 0 && e.Minted >= e.MaxSupply
}

// Ticket is one minted entry pass, uniquely owned by exactly one principal
// at a time.
type Ticket struct {
	ID    TicketID  `json:"ticket_id"`
	Owner Principal `json:"owner"`

	// EventID is a weak back-reference to the owning event, re-validated by
	// ID lookup on every access.
	EventID EventID `json:"event_id"`

	// URI is the explicit metadata location, empty when the ticket falls
	// back to the event's BaseURI.
	URI string `json:"uri,omitempty"`

	// Approved is the delegate allowed to transfer this ticket on the
	// owner's behalf. Zero means no delegate and serializes as the zero
	// address. Cleared on transfer and revocation.
	Approved Principal `json:"approved"`
}
