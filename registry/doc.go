// Package registry implements the event/ticket registry core: an
// access-controlled, in-memory state machine tracking events, the tickets
// minted against them, and the role grants that govern every mutation.
//
// The registry is a single serialized state machine. Every mutating
// operation takes the shared lock, resolves the caller's roles, checks the
// operation's preconditions (existence, active flag, supply), applies the
// state transition, and emits exactly one structured notification before
// releasing the lock. Failed operations change nothing and emit nothing.
//
// Two roles exist:
//
//   - administrator: unrestricted rights over all events and role grants.
//     Granted exactly once at construction to the initializing principal.
//   - organizer: granted automatically whenever an event names a new
//     organizer. A general organizer may mint for any event; per-event
//     authority additionally flows from the Event.Organizer field.
//
// Event and ticket IDs come from two independent monotonic counters owned
// by the registry instance, starting at 1. IDs are never reused: a revoked
// ticket's ID stays retired, and events are never deleted at all
// (deactivation is the only removal mechanism).
package registry
