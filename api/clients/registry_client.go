// Package clients provides HTTP clients for the ticketing registry API.
// The clients mirror the server's route layout and translate non-2xx
// responses into errors carrying the server's error message.
package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// RegistryClient talks to a ticketing registry server over HTTP.
type RegistryClient struct {
	// ServerAddr is the base URL of the registry server.
	ServerAddr string

	// Token is the bearer token attached to mutating requests. Read-only
	// endpoints do not require it.
	Token string

	// HTTPClient overrides the client used for requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

func (c *RegistryClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// do executes a JSON request and decodes the response into out when out
// is non-nil. Non-2xx responses are returned as errors carrying the
// server-side error message.
func (c *RegistryClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.ServerAddr+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse response from %s: %w", path, err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr == nil {
		var parsed api.ErrorResponse
		if json.Unmarshal(bodyBytes, &parsed) == nil && parsed.Error != "" {
			return fmt.Errorf("server returned error %d: %s", resp.StatusCode, parsed.Error)
		}
	}
	return fmt.Errorf("server returned non-2xx response: %d", resp.StatusCode)
}

// CreateEvent registers a new event and returns its assigned identifier.
func (c *RegistryClient) CreateEvent(req api.CreateEventRequest) (interfaces.EventID, error) {
	var resp api.CreateEventResponse
	if err := c.do(http.MethodPost, "/api/admin/events", req, &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// UpdateEvent replaces the mutable fields of an event.
func (c *RegistryClient) UpdateEvent(id interfaces.EventID, req api.UpdateEventRequest) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/admin/events/%d", id), req, nil)
}

// GrantRole grants a named role to a principal.
func (c *RegistryClient) GrantRole(req api.RoleRequest) error {
	return c.do(http.MethodPost, "/api/admin/roles/grant", req, nil)
}

// RevokeRole revokes a named role from a principal.
func (c *RegistryClient) RevokeRole(req api.RoleRequest) error {
	return c.do(http.MethodPost, "/api/admin/roles/revoke", req, nil)
}

// MintTicket issues a new ticket and returns its assigned identifier.
func (c *RegistryClient) MintTicket(req api.MintTicketRequest) (interfaces.TicketID, error) {
	var resp api.MintTicketResponse
	if err := c.do(http.MethodPost, "/api/tickets/mint", req, &resp); err != nil {
		return 0, err
	}
	return resp.TicketID, nil
}

// RevokeTicket removes a ticket from circulation.
func (c *RegistryClient) RevokeTicket(id interfaces.TicketID) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/revoke", id), nil, nil)
}

// SetTicketURI overrides a ticket's explicit metadata location.
func (c *RegistryClient) SetTicketURI(id interfaces.TicketID, uri string) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/tickets/%d/uri", id), api.SetTicketURIRequest{URI: uri}, nil)
}

// Approve sets or clears the transfer delegate on a ticket.
func (c *RegistryClient) Approve(id interfaces.TicketID, delegate string) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/approve", id), api.ApproveRequest{Delegate: delegate}, nil)
}

// Transfer moves a ticket between owners.
func (c *RegistryClient) Transfer(id interfaces.TicketID, req api.TransferRequest) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/transfer", id), req, nil)
}

// Event fetches an event record.
func (c *RegistryClient) Event(id interfaces.EventID) (*interfaces.Event, error) {
	var event interfaces.Event
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/public/events/%d", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Ticket fetches a ticket record together with its resolved metadata URI.
func (c *RegistryClient) Ticket(id interfaces.TicketID) (*api.TicketResponse, error) {
	var resp api.TicketResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/public/tickets/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Totals fetches the registry identity and lifetime counters.
func (c *RegistryClient) Totals() (*api.TotalsResponse, error) {
	var resp api.TotalsResponse
	if err := c.do(http.MethodGet, "/api/public/registry", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TicketMetadata fetches the metadata document behind a ticket's resolved URI.
func (c *RegistryClient) TicketMetadata(id interfaces.TicketID) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/public/tickets/%d/metadata", c.ServerAddr, id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request ticket metadata: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	return io.ReadAll(resp.Body)
}

// StoreMetadata publishes a raw metadata document and returns the URI the
// document is reachable at.
func (c *RegistryClient) StoreMetadata(doc []byte) (string, error) {
	req, err := http.NewRequest(http.MethodPost, c.ServerAddr+"/api/admin/metadata", bytes.NewReader(doc))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("could not request metadata endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", responseError(resp)
	}
	var parsed api.StoreMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not parse metadata response: %w", err)
	}
	return parsed.URI, nil
}
