package coordinator_test

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/coordinator"
	"strangerchat/backend/internal/models"
)

// mockClient is a test double for the coordinator.Client interface. The
// receive channel is buffered so emission in handlers never blocks tests.
type mockClient struct {
	id     string
	recv   chan models.Event
	closed bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{id: id, recv: make(chan models.Event, 64)}
}

func (c *mockClient) GetConnectionID() string             { return c.id }
func (c *mockClient) GetSendChannel() chan<- models.Event { return c.recv }
func (c *mockClient) Run()                                {}
func (c *mockClient) Close()                              { c.closed = true }

// drain returns every event buffered so far, leaving the channel empty.
func (c *mockClient) drain() []models.Event {
	var out []models.Event
	for {
		select {
		case ev := <-c.recv:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func ofType(events []models.Event, t models.EventType) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestCoordinator() *coordinator.Coordinator {
	return coordinator.New(zerolog.Nop())
}

// connect registers a mock client and swallows the connected greeting, so
// individual tests only see the events they trigger themselves.
func connect(t *testing.T, coord *coordinator.Coordinator, id string) *mockClient {
	t.Helper()
	client := newMockClient(id)
	coord.Register(client)
	greetings := ofType(client.drain(), models.EventConnected)
	require.Len(t, greetings, 1)
	return client
}

// dispatch submits one inbound event synchronously, the way the Run loop
// would.
func dispatch(t *testing.T, coord *coordinator.Coordinator, sender string, typ models.EventType, payload any) {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = data
	}
	coord.Dispatch(coordinator.Inbound{SenderID: sender, Type: typ, Payload: raw})
}
