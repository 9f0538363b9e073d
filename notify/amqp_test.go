package notify

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// newStubPublisher builds a publisher whose broker publish is replaced by
// the given function, with a small pending buffer to make overflow
// behavior easy to trigger.
func newStubPublisher(buffer int, publish func(interfaces.Notification) error) *AMQPPublisher {
	p := &AMQPPublisher{
		queue:   "test",
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		pending: make(chan interfaces.Notification, buffer),
		done:    make(chan struct{}),
		publish: publish,
	}
	go p.run()
	return p
}

func (p *AMQPPublisher) stop() {
	close(p.pending)
	<-p.done
}

func TestEmitDoesNotBlockOnStalledBroker(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var delivered []string

	p := newStubPublisher(2, func(n interfaces.Notification) error {
		once.Do(func() { close(started) })
		<-release
		mu.Lock()
		delivered = append(delivered, n.Kind())
		mu.Unlock()
		return nil
	})

	// The first emit is picked up by the publisher goroutine and stalls
	// inside the publish; the next two sit in the pending buffer.
	p.Emit(interfaces.EventCreated{EventID: 1})
	<-started
	p.Emit(interfaces.TicketMinted{TicketID: 1})
	p.Emit(interfaces.TicketMinted{TicketID: 2})

	// With the broker stalled every further emit must still return
	// immediately, dropping instead of waiting.
	start := time.Now()
	p.Emit(interfaces.TicketMinted{TicketID: 3})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	p.stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 3)
	assert.Equal(t, []string{"event_created", "ticket_minted", "ticket_minted"}, delivered)
}

func TestPublisherPreservesEmissionOrder(t *testing.T) {
	var mu sync.Mutex
	var delivered []interfaces.TicketID

	p := newStubPublisher(16, func(n interfaces.Notification) error {
		mu.Lock()
		delivered = append(delivered, n.(interfaces.TicketMinted).TicketID)
		mu.Unlock()
		return nil
	})

	for i := 1; i <= 10; i++ {
		p.Emit(interfaces.TicketMinted{TicketID: interfaces.TicketID(i)})
	}
	p.stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 10)
	for i, id := range delivered {
		assert.Equal(t, interfaces.TicketID(i+1), id)
	}
}

func TestCloseDrainsPendingNotifications(t *testing.T) {
	var mu sync.Mutex
	count := 0

	p := newStubPublisher(8, func(n interfaces.Notification) error {
		time.Sleep(time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	for i := 0; i < 5; i++ {
		p.Emit(interfaces.TicketRevoked{TicketID: interfaces.TicketID(i + 1)})
	}
	p.stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, count)
}
