package registry

import (
	"fmt"
	"log/slog"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/metrics"
)

// CreateEvent registers a new event with the next event ID and grants the
// organizer role to its organizer. Administrator only.
func (r *Registry) CreateEvent(caller interfaces.Principal, name string, organizer interfaces.Principal, maxSupply uint64, baseURI string) (interfaces.EventID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasRole(interfaces.RoleAdmin, caller) {
		return 0, fmt.Errorf("%w: only an administrator may create events", interfaces.ErrUnauthorized)
	}
	if organizer.IsZero() {
		return 0, fmt.Errorf("%w: organizer must not be the zero principal", interfaces.ErrInvalidArgument)
	}

	r.lastEventID++
	id := r.lastEventID
	r.events[id] = &interfaces.Event{
		ID:        id,
		Name:      name,
		Organizer: organizer,
		MaxSupply: maxSupply,
		BaseURI:   baseURI,
		Active:    true,
	}
	r.grantRole(interfaces.RoleOrganizer, organizer)

	metrics.EventsCreated.Inc()
	r.emit(interfaces.EventCreated{EventID: id, Name: name, Organizer: organizer, MaxSupply: maxSupply})
	r.log.Info("event created",
		slog.String("eventID", id.String()),
		slog.String("name", name),
		slog.String("organizer", organizer.String()),
		slog.Uint64("maxSupply", maxSupply))

	return id, nil
}

// UpdateEvent overwrites the event's name, supply limit, base URI, and
// active flag. The organizer field is immutable once set. Callable by an
// administrator or the event's organizer.
//
// MaxSupply is deliberately not validated against the minted count:
// shrinking the supply below it freezes further minting without revoking
// issued tickets.
func (r *Registry) UpdateEvent(caller interfaces.Principal, id interfaces.EventID, name string, maxSupply uint64, baseURI string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return fmt.Errorf("%w: event %s", interfaces.ErrNotFound, id)
	}
	if !r.hasRole(interfaces.RoleAdmin, caller) && caller != event.Organizer {
		return fmt.Errorf("%w: caller is neither an administrator nor the organizer of event %s", interfaces.ErrUnauthorized, id)
	}

	event.Name = name
	event.MaxSupply = maxSupply
	event.BaseURI = baseURI
	event.Active = active

	metrics.EventsUpdated.Inc()
	r.emit(interfaces.EventUpdated{EventID: id})
	r.log.Info("event updated",
		slog.String("eventID", id.String()),
		slog.Uint64("maxSupply", maxSupply),
		slog.Bool("active", active))

	return nil
}

// Event returns a copy of the event record.
func (r *Registry) Event(id interfaces.EventID) (interfaces.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return interfaces.Event{}, fmt.Errorf("%w: event %s", interfaces.ErrNotFound, id)
	}
	return *event, nil
}

// TotalEvents returns the number of event IDs issued so far.
func (r *Registry) TotalEvents() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.lastEventID)
}
