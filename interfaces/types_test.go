package interfaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketJSONAlwaysCarriesApproval(t *testing.T) {
	owner, err := NewPrincipalFromHex("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	// A cleared approval must still appear as the zero address so API
	// consumers can distinguish "no delegate" without probing for a
	// missing field.
	encoded, err := json.Marshal(Ticket{ID: 1, Owner: owner, EventID: 1})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &fields))
	require.Contains(t, fields, "approved")
	assert.JSONEq(t, `"0x0000000000000000000000000000000000000000"`, string(fields["approved"]))

	var decoded Ticket
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Approved.IsZero())
}
