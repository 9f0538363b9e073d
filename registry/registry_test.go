package registry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin      = mustPrincipal("0x1111111111111111111111111111111111111111")
	organizerA = mustPrincipal("0x2222222222222222222222222222222222222222")
	buyerB     = mustPrincipal("0x3333333333333333333333333333333333333333")
	buyerC     = mustPrincipal("0x4444444444444444444444444444444444444444")
	stranger   = mustPrincipal("0x5555555555555555555555555555555555555555")
)

func mustPrincipal(hex string) interfaces.Principal {
	p, err := interfaces.NewPrincipalFromHex(hex)
	if err != nil {
		panic(err)
	}
	return p
}

// recordingSink captures emitted notifications in order.
type recordingSink struct {
	emitted []interfaces.Notification
}

func (s *recordingSink) Emit(n interfaces.Notification) {
	s.emitted = append(s.emitted, n)
}

func newTestRegistry(t *testing.T) (*Registry, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := New("EventTickets", "ETK", admin, sink, logger)
	require.NoError(t, err)
	return reg, sink
}

func TestNewRejectsZeroDeployer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := New("EventTickets", "ETK", interfaces.Principal{}, nil, logger)
	require.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestDeployerIsSoleAdmin(t *testing.T) {
	reg, _ := newTestRegistry(t)

	assert.True(t, reg.HasRole(interfaces.RoleAdmin, admin))
	assert.False(t, reg.HasRole(interfaces.RoleAdmin, organizerA))
	assert.False(t, reg.HasRole(interfaces.RoleOrganizer, organizerA))
}

func TestCreateEventIDsStrictlyIncreasing(t *testing.T) {
	reg, _ := newTestRegistry(t)

	for want := uint64(1); want <= 5; want++ {
		id, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "")
		require.NoError(t, err)
		assert.Equal(t, interfaces.EventID(want), id)
	}
	assert.Equal(t, uint64(5), reg.TotalEvents())
}

func TestCreateEventAuthorization(t *testing.T) {
	reg, sink := newTestRegistry(t)

	_, err := reg.CreateEvent(stranger, "Concert", organizerA, 10, "")
	require.ErrorIs(t, err, interfaces.ErrUnauthorized)

	// An organizer without the admin role may not create events either.
	_, err = reg.CreateEvent(admin, "Concert", organizerA, 10, "")
	require.NoError(t, err)
	_, err = reg.CreateEvent(organizerA, "Festival", organizerA, 10, "")
	require.ErrorIs(t, err, interfaces.ErrUnauthorized)

	assert.Len(t, sink.emitted, 1)
}

func TestCreateEventRejectsZeroOrganizer(t *testing.T) {
	reg, sink := newTestRegistry(t)

	_, err := reg.CreateEvent(admin, "Concert", interfaces.Principal{}, 10, "")
	require.ErrorIs(t, err, interfaces.ErrInvalidArgument)
	assert.Empty(t, sink.emitted)
	assert.Equal(t, uint64(0), reg.TotalEvents())
}

func TestCreateEventGrantsOrganizerRole(t *testing.T) {
	reg, sink := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 100, "ipfs://base/")
	require.NoError(t, err)

	assert.True(t, reg.HasRole(interfaces.RoleOrganizer, organizerA))

	event, err := reg.Event(id)
	require.NoError(t, err)
	assert.Equal(t, "Concert", event.Name)
	assert.Equal(t, organizerA, event.Organizer)
	assert.Equal(t, uint64(100), event.MaxSupply)
	assert.Equal(t, uint64(0), event.Minted)
	assert.True(t, event.Active)

	require.Len(t, sink.emitted, 1)
	created, ok := sink.emitted[0].(interfaces.EventCreated)
	require.True(t, ok)
	assert.Equal(t, id, created.EventID)
	assert.Equal(t, organizerA, created.Organizer)
}

func TestUpdateEventByOrganizer(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 100, "")
	require.NoError(t, err)

	// The organizer may update without holding the admin role.
	require.NoError(t, reg.UpdateEvent(organizerA, id, "Concert (moved)", 50, "https://meta/", false))

	event, err := reg.Event(id)
	require.NoError(t, err)
	assert.Equal(t, "Concert (moved)", event.Name)
	assert.Equal(t, uint64(50), event.MaxSupply)
	assert.Equal(t, "https://meta/", event.BaseURI)
	assert.False(t, event.Active)
	// Organizer is immutable.
	assert.Equal(t, organizerA, event.Organizer)

	// An unrelated principal may not.
	err = reg.UpdateEvent(stranger, id, "x", 1, "", true)
	require.ErrorIs(t, err, interfaces.ErrUnauthorized)

	err = reg.UpdateEvent(admin, 99, "x", 1, "", true)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestUpdateEventAllowsShrinkingSupplyBelowMinted(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := reg.MintTicket(organizerA, id, buyerB, "")
		require.NoError(t, err)
	}

	// Shrinking below the minted count is accepted and freezes minting.
	require.NoError(t, reg.UpdateEvent(admin, id, "Concert", 2, "", true))

	_, err = reg.MintTicket(organizerA, id, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrCapacityExceeded)

	event, err := reg.Event(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), event.Minted)
}

func TestMintTicketRequiresActiveEvent(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 10, "")
	require.NoError(t, err)
	require.NoError(t, reg.UpdateEvent(admin, id, "Concert", 10, "", false))

	// No caller role overrides the active check, not even admin.
	_, err = reg.MintTicket(admin, id, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrInactiveResource)
	_, err = reg.MintTicket(organizerA, id, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrInactiveResource)
}

func TestMintTicketAuthorization(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 10, "")
	require.NoError(t, err)

	_, err = reg.MintTicket(stranger, id, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrUnauthorized)

	// Event organizer, general organizer, and admin may all mint.
	_, err = reg.MintTicket(organizerA, id, buyerB, "")
	require.NoError(t, err)
	_, err = reg.MintTicket(admin, id, buyerB, "")
	require.NoError(t, err)

	require.NoError(t, reg.GrantRole(admin, interfaces.RoleOrganizer, buyerC))
	_, err = reg.MintTicket(buyerC, id, buyerB, "")
	require.NoError(t, err)
}

func TestMintTicketUnknownEvent(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.MintTicket(admin, 42, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestMintTicketRejectsZeroRecipient(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 10, "")
	require.NoError(t, err)

	_, err = reg.MintTicket(organizerA, id, interfaces.Principal{}, "")
	require.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestSupplyLimitEnforced(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Concert", organizerA, 3, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := reg.MintTicket(organizerA, id, buyerB, "")
		require.NoError(t, err)
	}

	_, err = reg.MintTicket(organizerA, id, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrCapacityExceeded)

	event, err := reg.Event(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), event.Minted)
}

func TestUnlimitedSupply(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id, err := reg.CreateEvent(admin, "Open Mic", organizerA, 0, "")
	require.NoError(t, err)

	for i := 0; i < 250; i++ {
		_, err := reg.MintTicket(organizerA, id, buyerB, "")
		require.NoError(t, err)
	}

	event, err := reg.Event(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), event.Minted)
}

func TestRevokeTicket(t *testing.T) {
	reg, sink := newTestRegistry(t)

	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 10, "")
	require.NoError(t, err)
	ticketID, err := reg.MintTicket(organizerA, eventID, buyerB, "ipfs://X")
	require.NoError(t, err)

	// The owner cannot revoke; the organizer and admin can.
	require.ErrorIs(t, reg.RevokeTicket(buyerB, ticketID), interfaces.ErrUnauthorized)
	require.NoError(t, reg.RevokeTicket(organizerA, ticketID))

	event, err := reg.Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), event.Minted)

	// The record is gone and the ID is retired.
	_, err = reg.Ticket(ticketID)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
	_, err = reg.TicketURI(ticketID)
	require.ErrorIs(t, err, interfaces.ErrNotFound)

	// A second revoke fails with NotFound and never drives minted negative.
	require.ErrorIs(t, reg.RevokeTicket(organizerA, ticketID), interfaces.ErrNotFound)
	event, err = reg.Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), event.Minted)

	last := sink.emitted[len(sink.emitted)-1]
	revoked, ok := last.(interfaces.TicketRevoked)
	require.True(t, ok)
	assert.Equal(t, ticketID, revoked.TicketID)
	assert.Equal(t, eventID, revoked.EventID)
}

func TestTicketIDsNeverReused(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// The concert scenario: maxSupply 1, mint, sell out, revoke, mint again.
	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 1, "")
	require.NoError(t, err)

	first, err := reg.MintTicket(organizerA, eventID, buyerB, "")
	require.NoError(t, err)

	event, err := reg.Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), event.Minted)

	_, err = reg.MintTicket(organizerA, eventID, buyerC, "")
	require.ErrorIs(t, err, interfaces.ErrCapacityExceeded)

	require.NoError(t, reg.RevokeTicket(admin, first))
	event, err = reg.Event(eventID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), event.Minted)

	second, err := reg.MintTicket(organizerA, eventID, buyerC, "")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	// TotalTickets counts issued IDs, not live tickets.
	assert.Equal(t, uint64(2), reg.TotalTickets())
}

func TestTicketURIResolution(t *testing.T) {
	reg, _ := newTestRegistry(t)

	explicit, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "https://b/")
	require.NoError(t, err)

	// Explicit URI wins over the base.
	ticketID, err := reg.MintTicket(organizerA, explicit, buyerB, "ipfs://X")
	require.NoError(t, err)
	uri, err := reg.TicketURI(ticketID)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://X", uri)

	// Empty explicit URI falls back to baseURI + decimal ID.
	for i := 0; i < 5; i++ {
		_, err := reg.MintTicket(organizerA, explicit, buyerB, "")
		require.NoError(t, err)
	}
	seventh, err := reg.MintTicket(organizerA, explicit, buyerB, "")
	require.NoError(t, err)
	require.Equal(t, interfaces.TicketID(7), seventh)
	uri, err = reg.TicketURI(seventh)
	require.NoError(t, err)
	assert.Equal(t, "https://b/7", uri)

	// Clearing the explicit URI restores the fallback.
	require.NoError(t, reg.SetTicketURI(organizerA, ticketID, ""))
	uri, err = reg.TicketURI(ticketID)
	require.NoError(t, err)
	assert.Equal(t, "https://b/1", uri)

	// No explicit URI and no base resolves to the empty string.
	bare, err := reg.CreateEvent(admin, "Bare", organizerA, 0, "")
	require.NoError(t, err)
	bareTicket, err := reg.MintTicket(organizerA, bare, buyerB, "")
	require.NoError(t, err)
	uri, err = reg.TicketURI(bareTicket)
	require.NoError(t, err)
	assert.Equal(t, "", uri)
}

func TestSetTicketURIAuthorization(t *testing.T) {
	reg, _ := newTestRegistry(t)

	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "")
	require.NoError(t, err)
	ticketID, err := reg.MintTicket(organizerA, eventID, buyerB, "")
	require.NoError(t, err)

	require.ErrorIs(t, reg.SetTicketURI(buyerB, ticketID, "x"), interfaces.ErrUnauthorized)
	require.NoError(t, reg.SetTicketURI(admin, ticketID, "ipfs://Y"))
	require.ErrorIs(t, reg.SetTicketURI(admin, 99, "x"), interfaces.ErrNotFound)
}

func TestTransfer(t *testing.T) {
	reg, sink := newTestRegistry(t)

	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "https://b/")
	require.NoError(t, err)
	ticketID, err := reg.MintTicket(organizerA, eventID, buyerB, "")
	require.NoError(t, err)

	// Wrong from is rejected.
	require.ErrorIs(t, reg.Transfer(buyerB, ticketID, buyerC, buyerB), interfaces.ErrUnauthorized)
	// A stranger may not move someone else's ticket.
	require.ErrorIs(t, reg.Transfer(stranger, ticketID, buyerB, stranger), interfaces.ErrUnauthorized)
	// Zero recipient is rejected.
	require.ErrorIs(t, reg.Transfer(buyerB, ticketID, buyerB, interfaces.Principal{}), interfaces.ErrInvalidArgument)

	require.NoError(t, reg.Transfer(buyerB, ticketID, buyerB, buyerC))

	ticket, err := reg.Ticket(ticketID)
	require.NoError(t, err)
	assert.Equal(t, buyerC, ticket.Owner)
	// Transfer does not touch the event back-reference or the URI.
	assert.Equal(t, eventID, ticket.EventID)
	uri, err := reg.TicketURI(ticketID)
	require.NoError(t, err)
	assert.Equal(t, "https://b/"+ticketID.String(), uri)

	// Self-transfer is a no-op that still succeeds and emits.
	before := len(sink.emitted)
	require.NoError(t, reg.Transfer(buyerC, ticketID, buyerC, buyerC))
	assert.Len(t, sink.emitted, before+1)
}

func TestTransferByApprovedDelegate(t *testing.T) {
	reg, _ := newTestRegistry(t)

	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 0, "")
	require.NoError(t, err)
	ticketID, err := reg.MintTicket(organizerA, eventID, buyerB, "")
	require.NoError(t, err)

	// Only the owner may approve.
	require.ErrorIs(t, reg.Approve(stranger, ticketID, stranger), interfaces.ErrUnauthorized)
	require.NoError(t, reg.Approve(buyerB, ticketID, buyerC))

	require.NoError(t, reg.Transfer(buyerC, ticketID, buyerB, buyerC))

	// Approval is cleared by the transfer.
	ticket, err := reg.Ticket(ticketID)
	require.NoError(t, err)
	assert.True(t, ticket.Approved.IsZero())
	require.ErrorIs(t, reg.Transfer(buyerB, ticketID, buyerC, buyerB), interfaces.ErrUnauthorized)
}

func TestRoleGrantRevoke(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.ErrorIs(t, reg.GrantRole(stranger, interfaces.RoleOrganizer, stranger), interfaces.ErrUnauthorized)
	require.ErrorIs(t, reg.GrantRole(admin, interfaces.RoleOrganizer, interfaces.Principal{}), interfaces.ErrInvalidArgument)

	require.NoError(t, reg.GrantRole(admin, interfaces.RoleOrganizer, buyerC))
	// Idempotent.
	require.NoError(t, reg.GrantRole(admin, interfaces.RoleOrganizer, buyerC))
	assert.True(t, reg.HasRole(interfaces.RoleOrganizer, buyerC))

	require.ErrorIs(t, reg.RevokeRole(stranger, interfaces.RoleOrganizer, buyerC), interfaces.ErrUnauthorized)
	require.NoError(t, reg.RevokeRole(admin, interfaces.RoleOrganizer, buyerC))
	assert.False(t, reg.HasRole(interfaces.RoleOrganizer, buyerC))
	// Revoking an absent grant is a no-op.
	require.NoError(t, reg.RevokeRole(admin, interfaces.RoleOrganizer, buyerC))
}

func TestNotificationOrderAndFailureSilence(t *testing.T) {
	reg, sink := newTestRegistry(t)

	eventID, err := reg.CreateEvent(admin, "Concert", organizerA, 1, "")
	require.NoError(t, err)
	ticketID, err := reg.MintTicket(organizerA, eventID, buyerB, "")
	require.NoError(t, err)

	// Failures emit nothing.
	_, err = reg.MintTicket(organizerA, eventID, buyerB, "")
	require.ErrorIs(t, err, interfaces.ErrCapacityExceeded)

	require.NoError(t, reg.Transfer(buyerB, ticketID, buyerB, buyerC))
	require.NoError(t, reg.RevokeTicket(admin, ticketID))

	kinds := make([]string, 0, len(sink.emitted))
	for _, n := range sink.emitted {
		kinds = append(kinds, n.Kind())
	}
	assert.Equal(t, []string{"event_created", "ticket_minted", "ticket_transferred", "ticket_revoked"}, kinds)
}

func TestNameAndSymbol(t *testing.T) {
	reg, _ := newTestRegistry(t)
	assert.Equal(t, "EventTickets", reg.Name())
	assert.Equal(t, "ETK", reg.Symbol())
}
