package registry

import (
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRegistry mocks the interfaces.TicketingRegistry interface.
type MockRegistry struct {
	mock.Mock
}

// Name mocks the Name method.
func (m *MockRegistry) Name() string {
	args := m.Called()
	return args.String(0)
}

// Symbol mocks the Symbol method.
func (m *MockRegistry) Symbol() string {
	args := m.Called()
	return args.String(0)
}

// HasRole mocks the HasRole method.
func (m *MockRegistry) HasRole(role interfaces.RoleID, principal interfaces.Principal) bool {
	args := m.Called(role, principal)
	return args.Bool(0)
}

// GrantRole mocks the GrantRole method.
func (m *MockRegistry) GrantRole(caller interfaces.Principal, role interfaces.RoleID, principal interfaces.Principal) error {
	args := m.Called(caller, role, principal)
	return args.Error(0)
}

// RevokeRole mocks the RevokeRole method.
func (m *MockRegistry) RevokeRole(caller interfaces.Principal, role interfaces.RoleID, principal interfaces.Principal) error {
	args := m.Called(caller, role, principal)
	return args.Error(0)
}

// CreateEvent mocks the CreateEvent method.
func (m *MockRegistry) CreateEvent(caller interfaces.Principal, name string, organizer interfaces.Principal, maxSupply uint64, baseURI string) (interfaces.EventID, error) {
	args := m.Called(caller, name, organizer, maxSupply, baseURI)
	return args.Get(0).(interfaces.EventID), args.Error(1)
}

// UpdateEvent mocks the UpdateEvent method.
func (m *MockRegistry) UpdateEvent(caller interfaces.Principal, id interfaces.EventID, name string, maxSupply uint64, baseURI string, active bool) error {
	args := m.Called(caller, id, name, maxSupply, baseURI, active)
	return args.Error(0)
}

// Event mocks the Event method.
func (m *MockRegistry) Event(id interfaces.EventID) (interfaces.Event, error) {
	args := m.Called(id)
	return args.Get(0).(interfaces.Event), args.Error(1)
}

// TotalEvents mocks the TotalEvents method.
func (m *MockRegistry) TotalEvents() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

// MintTicket mocks the MintTicket method.
func (m *MockRegistry) MintTicket(caller interfaces.Principal, eventID interfaces.EventID, to interfaces.Principal, uri string) (interfaces.TicketID, error) {
	args := m.Called(caller, eventID, to, uri)
	return args.Get(0).(interfaces.TicketID), args.Error(1)
}

// RevokeTicket mocks the RevokeTicket method.
func (m *MockRegistry) RevokeTicket(caller interfaces.Principal, id interfaces.TicketID) error {
	args := m.Called(caller, id)
	return args.Error(0)
}

// SetTicketURI mocks the SetTicketURI method.
func (m *MockRegistry) SetTicketURI(caller interfaces.Principal, id interfaces.TicketID, uri string) error {
	args := m.Called(caller, id, uri)
	return args.Error(0)
}

// TicketURI mocks the TicketURI method.
func (m *MockRegistry) TicketURI(id interfaces.TicketID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

// Approve mocks the Approve method.
func (m *MockRegistry) Approve(caller interfaces.Principal, id interfaces.TicketID, delegate interfaces.Principal) error {
	args := m.Called(caller, id, delegate)
	return args.Error(0)
}

// Transfer mocks the Transfer method.
func (m *MockRegistry) Transfer(caller interfaces.Principal, id interfaces.TicketID, from, to interfaces.Principal) error {
	args := m.Called(caller, id, from, to)
	return args.Error(0)
}

// Ticket mocks the Ticket method.
func (m *MockRegistry) Ticket(id interfaces.TicketID) (interfaces.Ticket, error) {
	args := m.Called(id)
	return args.Get(0).(interfaces.Ticket), args.Error(1)
}

// TotalTickets mocks the TotalTickets method.
func (m *MockRegistry) TotalTickets() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}
