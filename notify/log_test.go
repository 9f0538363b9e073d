package notify

import (
	"testing"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendsInOrder(t *testing.T) {
	l := NewLog()

	l.Emit(interfaces.EventCreated{EventID: 1, Name: "Concert"})
	l.Emit(interfaces.TicketMinted{EventID: 1, TicketID: 1})
	l.Emit(interfaces.TicketRevoked{TicketID: 1, EventID: 1})

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "event_created", all[0].Kind())
	assert.Equal(t, "ticket_minted", all[1].Kind())
	assert.Equal(t, "ticket_revoked", all[2].Kind())
	assert.Equal(t, 3, l.Len())
}

func TestLogSnapshotIsCopy(t *testing.T) {
	l := NewLog()
	l.Emit(interfaces.EventUpdated{EventID: 1})

	snapshot := l.All()
	l.Emit(interfaces.EventUpdated{EventID: 2})

	assert.Len(t, snapshot, 1)
	assert.Len(t, l.All(), 2)
}

func TestSubscribeReceivesLiveFeed(t *testing.T) {
	l := NewLog()

	ch, cancel := l.Subscribe(4)
	defer cancel()

	l.Emit(interfaces.TicketMinted{EventID: 1, TicketID: 7})

	n := <-ch
	minted, ok := n.(interfaces.TicketMinted)
	require.True(t, ok)
	assert.Equal(t, interfaces.TicketID(7), minted.TicketID)
}

func TestSubscribeSlowConsumerDoesNotBlockEmit(t *testing.T) {
	l := NewLog()

	ch, cancel := l.Subscribe(1)
	defer cancel()

	// The second emit exceeds the buffer and must be dropped, not block.
	l.Emit(interfaces.EventUpdated{EventID: 1})
	l.Emit(interfaces.EventUpdated{EventID: 2})

	assert.Len(t, ch, 1)
	assert.Equal(t, 2, l.Len())
}

func TestCancelClosesFeed(t *testing.T) {
	l := NewLog()

	ch, cancel := l.Subscribe(1)
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Emitting after cancel must not panic on the closed channel.
	l.Emit(interfaces.EventUpdated{EventID: 1})
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewLog(), NewLog()
	m := Multi{a, b}

	m.Emit(interfaces.EventCreated{EventID: 1})

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}
