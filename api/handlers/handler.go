// Package handlers processes HTTP requests for the event ticketing
// registry. Handlers translate between the JSON API surface and the
// registry core, map the registry error taxonomy onto HTTP status codes,
// and resolve ticket metadata through the storage layer.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/auth"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/notify"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// Handler processes HTTP requests for the ticketing registry service.
type Handler struct {
	registry       interfaces.TicketingRegistry
	storageFactory interfaces.MetadataBackendFactory
	publish        interfaces.MetadataLocation
	notifications  *notify.Log
	log            *slog.Logger
}

// NewHandler creates an HTTP request handler.
//
// publish is the backend location new metadata documents are stored to; a
// zero location disables the publish endpoint. notifications is the
// in-memory log backing the snapshot endpoint and may be nil when the
// deployment only forwards notifications to a broker.
func NewHandler(registry interfaces.TicketingRegistry, storageFactory interfaces.MetadataBackendFactory, publish interfaces.MetadataLocation, notifications *notify.Log, log *slog.Logger) *Handler {
	return &Handler{
		registry:       registry,
		storageFactory: storageFactory,
		publish:        publish,
		notifications:  notifications,
		log:            log,
	}
}

// HandleCreateEvent processes POST /api/admin/events.
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req api.CreateEventRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	organizer, err := interfaces.NewPrincipalFromHex(req.Organizer)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.registry.CreateEvent(caller, req.Name, organizer, req.MaxSupply, req.BaseURI)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, api.CreateEventResponse{EventID: id})
}

// HandleUpdateEvent processes PUT /api/admin/events/{event_id}.
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req api.UpdateEventRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.registry.UpdateEvent(caller, id, req.Name, req.MaxSupply, req.BaseURI, req.Active); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGrantRole processes POST /api/admin/roles/grant.
func (h *Handler) HandleGrantRole(w http.ResponseWriter, r *http.Request) {
	h.handleRoleChange(w, r, h.registry.GrantRole)
}

// HandleRevokeRole processes POST /api/admin/roles/revoke.
func (h *Handler) HandleRevokeRole(w http.ResponseWriter, r *http.Request) {
	h.handleRoleChange(w, r, h.registry.RevokeRole)
}

func (h *Handler) handleRoleChange(w http.ResponseWriter, r *http.Request, apply func(interfaces.Principal, interfaces.RoleID, interfaces.Principal) error) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req api.RoleRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	role, err := interfaces.RoleByName(req.Role)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	principal, err := interfaces.NewPrincipalFromHex(req.Principal)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := apply(caller, role, principal); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMintTicket processes POST /api/tickets/mint.
func (h *Handler) HandleMintTicket(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}

	var req api.MintTicketRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := interfaces.NewPrincipalFromHex(req.To)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.registry.MintTicket(caller, req.EventID, to, req.URI)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, api.MintTicketResponse{TicketID: id})
}

// HandleRevokeTicket processes POST /api/tickets/{ticket_id}/revoke.
func (h *Handler) HandleRevokeTicket(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.registry.RevokeTicket(caller, id); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetTicketURI processes PUT /api/tickets/{ticket_id}/uri.
func (h *Handler) HandleSetTicketURI(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req api.SetTicketURIRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.registry.SetTicketURI(caller, id, req.URI); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleApprove processes POST /api/tickets/{ticket_id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req api.ApproveRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	// Empty delegate clears the approval.
	var delegate interfaces.Principal
	if req.Delegate != "" {
		delegate, err = interfaces.NewPrincipalFromHex(req.Delegate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if err := h.registry.Approve(caller, id, delegate); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTransfer processes POST /api/tickets/{ticket_id}/transfer.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req api.TransferRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	from, err := interfaces.NewPrincipalFromHex(req.From)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := interfaces.NewPrincipalFromHex(req.To)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.registry.Transfer(caller, id, from, to); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStoreMetadata processes POST /api/admin/metadata. The raw request
// body is published to the configured metadata backend; the returned URI
// can then be used as a mint URI or event base URI.
func (h *Handler) HandleStoreMetadata(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.PrincipalFromContext(r.Context()); err != nil {
		h.writeError(w, http.StatusUnauthorized, err)
		return
	}
	if h.publish.IsZero() {
		h.writeError(w, http.StatusNotImplemented, errors.New("metadata publishing is not configured"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	backend, err := h.storageFactory.BackendFor(h.publish)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	loc, err := backend.Store(r.Context(), body)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, api.StoreMetadataResponse{URI: loc.String()})
}

// HandleGetEvent processes GET /api/public/events/{event_id}.
func (h *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	event, err := h.registry.Event(id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}

// HandleGetTicket processes GET /api/public/tickets/{ticket_id}.
func (h *Handler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	ticket, err := h.registry.Ticket(id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	uri, err := h.registry.TicketURI(id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, api.TicketResponse{Ticket: ticket, ResolvedURI: uri})
}

// HandleTotals processes GET /api/public/registry.
func (h *Handler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.TotalsResponse{
		Name:         h.registry.Name(),
		Symbol:       h.registry.Symbol(),
		TotalEvents:  h.registry.TotalEvents(),
		TotalTickets: h.registry.TotalTickets(),
	})
}

// HandleTicketMetadata processes GET /api/public/tickets/{ticket_id}/metadata.
// It resolves the ticket's metadata URI and fetches the document behind it.
func (h *Handler) HandleTicketMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := ticketIDParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	uri, err := h.registry.TicketURI(id)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	if uri == "" {
		h.writeError(w, http.StatusNotFound, errors.New("ticket has no metadata location"))
		return
	}

	loc, err := interfaces.ParseMetadataLocation(uri)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	backend, err := h.storageFactory.BackendFor(loc)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	data, err := backend.Fetch(r.Context(), loc)
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleNotifications processes GET /api/public/notifications, returning a
// snapshot of the append-only notification log in emission order.
func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	if h.notifications == nil {
		h.writeError(w, http.StatusNotImplemented, errors.New("notification log is not enabled"))
		return
	}

	all := h.notifications.All()
	records := make([]api.NotificationRecord, 0, len(all))
	for _, n := range all {
		records = append(records, api.NotificationRecord{Kind: n.Kind(), Payload: n})
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	return json.NewDecoder(body).Decode(dst)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.log.Debug("request failed", "status", status, "err", err)
	h.writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}

// writeRegistryError maps the registry and storage error taxonomy onto HTTP
// status codes. The response body always carries the full error message so
// callers can distinguish the taxonomy kind.
func (h *Handler) writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interfaces.ErrUnauthorized):
		h.writeError(w, http.StatusForbidden, err)
	case errors.Is(err, interfaces.ErrNotFound), errors.Is(err, interfaces.ErrMetadataNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, interfaces.ErrInvalidArgument), errors.Is(err, interfaces.ErrInvalidLocationURI):
		h.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, interfaces.ErrInactiveResource), errors.Is(err, interfaces.ErrCapacityExceeded):
		h.writeError(w, http.StatusConflict, err)
	case errors.Is(err, interfaces.ErrReadOnlyBackend):
		h.writeError(w, http.StatusNotImplemented, err)
	case errors.Is(err, interfaces.ErrBackendUnavailable):
		h.writeError(w, http.StatusBadGateway, err)
	default:
		h.writeError(w, http.StatusInternalServerError, err)
	}
}

func eventIDParam(r *http.Request) (interfaces.EventID, error) {
	raw := chi.URLParam(r, "event_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid event id: must be a decimal integer")
	}
	return interfaces.EventID(id), nil
}

func ticketIDParam(r *http.Request) (interfaces.TicketID, error) {
	raw := chi.URLParam(r, "ticket_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid ticket id: must be a decimal integer")
	}
	return interfaces.TicketID(id), nil
}
