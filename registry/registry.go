package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// Registry is the in-memory implementation of
// interfaces.TicketingRegistry. All state lives behind a single mutex;
// operations on it execute strictly sequentially.
type Registry struct {
	mu sync.Mutex

	name   string
	symbol string

	roles   map[interfaces.RoleID]map[interfaces.Principal]struct{}
	events  map[interfaces.EventID]*interfaces.Event
	tickets map[interfaces.TicketID]*interfaces.Ticket

	// Monotonic ID counters, incremented exactly once per successful
	// creation. Never shared across registry instances.
	lastEventID  interfaces.EventID
	lastTicketID interfaces.TicketID

	sink interfaces.Sink
	log  *slog.Logger
}

// New creates a registry with the given display name and symbol and grants
// the administrator role to the deploying principal. The sink receives one
// notification per successful mutation; a nil sink discards them.
func New(name, symbol string, deployer interfaces.Principal, sink interfaces.Sink, log *slog.Logger) (*Registry, error) {
	if deployer.IsZero() {
		return nil, fmt.Errorf("%w: deployer must not be the zero principal", interfaces.ErrInvalidArgument)
	}

	r := &Registry{
		name:    name,
		symbol:  symbol,
		roles:   make(map[interfaces.RoleID]map[interfaces.Principal]struct{}),
		events:  make(map[interfaces.EventID]*interfaces.Event),
		tickets: make(map[interfaces.TicketID]*interfaces.Ticket),
		sink:    sink,
		log:     log,
	}
	r.grantRole(interfaces.RoleAdmin, deployer)

	log.Info("registry initialized",
		slog.String("name", name),
		slog.String("symbol", symbol),
		slog.String("admin", deployer.String()))

	return r, nil
}

// Name returns the cosmetic display name given at construction.
func (r *Registry) Name() string { return r.name }

// Symbol returns the cosmetic display symbol given at construction.
func (r *Registry) Symbol() string { return r.symbol }

// emit delivers a notification for a completed mutation. Called with the
// registry lock held so notification order matches mutation order.
func (r *Registry) emit(n interfaces.Notification) {
	if r.sink == nil {
		return
	}
	r.sink.Emit(n)
}
