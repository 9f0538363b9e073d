package clients

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/auth"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/handlers"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/notify"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/registry"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/storage"
)

var clientTestSecret = []byte("client-test-secret")

func startTestServer(t *testing.T, admin interfaces.Principal) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	nlog := notify.NewLog()

	reg, err := registry.New("EventTickets", "ETK", admin, nlog, logger)
	require.NoError(t, err)

	tempDir := t.TempDir()
	factory := storage.NewFactory(storage.Config{PublishDir: tempDir}, logger)
	publish, err := interfaces.ParseMetadataLocation("file://" + tempDir)
	require.NoError(t, err)

	handler := handlers.NewHandler(reg, factory, publish, nlog, logger)
	authed := auth.Middleware(clientTestSecret, logger)

	mux := chi.NewRouter()
	mux.With(authed).Post("/api/admin/events", handler.HandleCreateEvent)
	mux.With(authed).Put("/api/admin/events/{event_id}", handler.HandleUpdateEvent)
	mux.With(authed).Post("/api/admin/roles/grant", handler.HandleGrantRole)
	mux.With(authed).Post("/api/admin/roles/revoke", handler.HandleRevokeRole)
	mux.With(authed).Post("/api/admin/metadata", handler.HandleStoreMetadata)
	mux.With(authed).Post("/api/tickets/mint", handler.HandleMintTicket)
	mux.With(authed).Post("/api/tickets/{ticket_id}/revoke", handler.HandleRevokeTicket)
	mux.With(authed).Put("/api/tickets/{ticket_id}/uri", handler.HandleSetTicketURI)
	mux.With(authed).Post("/api/tickets/{ticket_id}/approve", handler.HandleApprove)
	mux.With(authed).Post("/api/tickets/{ticket_id}/transfer", handler.HandleTransfer)
	mux.Get("/api/public/registry", handler.HandleTotals)
	mux.Get("/api/public/events/{event_id}", handler.HandleGetEvent)
	mux.Get("/api/public/tickets/{ticket_id}", handler.HandleGetTicket)
	mux.Get("/api/public/tickets/{ticket_id}/metadata", handler.HandleTicketMetadata)
	mux.Get("/api/public/notifications", handler.HandleNotifications)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func clientFor(t *testing.T, srv *httptest.Server, as interfaces.Principal) *RegistryClient {
	t.Helper()
	token, err := auth.NewToken(clientTestSecret, as, time.Minute)
	require.NoError(t, err)
	return &RegistryClient{ServerAddr: srv.URL, Token: token, HTTPClient: srv.Client()}
}

func TestClientEndToEnd(t *testing.T) {
	admin, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	organizer, err := interfaces.NewPrincipalFromHex("0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	buyer, err := interfaces.NewPrincipalFromHex("0x3333333333333333333333333333333333333333")
	require.NoError(t, err)

	srv := startTestServer(t, admin)
	adminClient := clientFor(t, srv, admin)
	organizerClient := clientFor(t, srv, organizer)
	buyerClient := clientFor(t, srv, buyer)

	// Publish a metadata document before anchoring an event to it.
	doc := []byte(`{"name":"Concert"}`)
	baseURI, err := adminClient.StoreMetadata(doc)
	require.NoError(t, err)
	require.NotEmpty(t, baseURI)

	eventID, err := adminClient.CreateEvent(api.CreateEventRequest{
		Name:      "Concert",
		Organizer: organizer.String(),
		MaxSupply: 2,
		BaseURI:   "https://b/",
	})
	require.NoError(t, err)
	assert.Equal(t, interfaces.EventID(1), eventID)

	ticketID, err := organizerClient.MintTicket(api.MintTicketRequest{
		EventID: eventID,
		To:      buyer.String(),
		URI:     baseURI,
	})
	require.NoError(t, err)
	assert.Equal(t, interfaces.TicketID(1), ticketID)

	// The explicit mint URI resolves to the published document.
	fetched, err := buyerClient.TicketMetadata(ticketID)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(fetched))

	ticket, err := buyerClient.Ticket(ticketID)
	require.NoError(t, err)
	assert.Equal(t, buyer, ticket.Ticket.Owner)
	assert.Equal(t, baseURI, ticket.ResolvedURI)

	require.NoError(t, buyerClient.Transfer(ticketID, api.TransferRequest{
		From: buyer.String(),
		To:   organizer.String(),
	}))

	totals, err := buyerClient.Totals()
	require.NoError(t, err)
	assert.Equal(t, "EventTickets", totals.Name)
	assert.Equal(t, uint64(1), totals.TotalEvents)
	assert.Equal(t, uint64(1), totals.TotalTickets)

	require.NoError(t, organizerClient.RevokeTicket(ticketID))
	_, err = buyerClient.Ticket(ticketID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClientSurfacesServerErrors(t *testing.T) {
	admin, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	stranger, err := interfaces.NewPrincipalFromHex("0x9999999999999999999999999999999999999999")
	require.NoError(t, err)

	srv := startTestServer(t, admin)
	strangerClient := clientFor(t, srv, stranger)

	_, err = strangerClient.CreateEvent(api.CreateEventRequest{
		Name:      "Concert",
		Organizer: stranger.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")

	// Without any token the middleware rejects outright.
	bare := &RegistryClient{ServerAddr: srv.URL, HTTPClient: srv.Client()}
	_, err = bare.CreateEvent(api.CreateEventRequest{Name: "Concert", Organizer: admin.String()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClientRoleManagement(t *testing.T) {
	admin, err := interfaces.NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	helper, err := interfaces.NewPrincipalFromHex("0x4444444444444444444444444444444444444444")
	require.NoError(t, err)

	srv := startTestServer(t, admin)
	adminClient := clientFor(t, srv, admin)
	helperClient := clientFor(t, srv, helper)

	eventID, err := adminClient.CreateEvent(api.CreateEventRequest{
		Name:      "Workshop",
		Organizer: admin.String(),
	})
	require.NoError(t, err)

	// Not an organizer yet.
	_, err = helperClient.MintTicket(api.MintTicketRequest{EventID: eventID, To: helper.String()})
	require.Error(t, err)

	require.NoError(t, adminClient.GrantRole(api.RoleRequest{Role: "organizer", Principal: helper.String()}))
	_, err = helperClient.MintTicket(api.MintTicketRequest{EventID: eventID, To: helper.String()})
	require.NoError(t, err)

	require.NoError(t, adminClient.RevokeRole(api.RoleRequest{Role: "organizer", Principal: helper.String()}))
	_, err = helperClient.MintTicket(api.MintTicketRequest{EventID: eventID, To: helper.String()})
	require.Error(t, err)
}
