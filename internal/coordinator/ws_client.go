package coordinator

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"strangerchat/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// SendBufferSize is the per-client outbound buffer. When it fills the
	// coordinator drops events rather than blocking.
	SendBufferSize = 256
)

// WebSocketClient implements Client over one gorilla/websocket connection.
type WebSocketClient struct {
	ConnectionID string
	Conn         *websocket.Conn
	Coordinator  *Coordinator
	Send         chan models.Event

	log       zerolog.Logger
	closeOnce sync.Once
}

func NewWebSocketClient(id string, conn *websocket.Conn, coord *Coordinator, log zerolog.Logger) *WebSocketClient {
	return &WebSocketClient{
		ConnectionID: id,
		Conn:         conn,
		Coordinator:  coord,
		Send:         make(chan models.Event, SendBufferSize),
		log:          log.With().Str("participant_id", id).Logger(),
	}
}

func (c *WebSocketClient) GetConnectionID() string             { return c.ConnectionID }
func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the Send channel down, which stops the write pump. The
// coordinator may call this both from the disconnect path and at shutdown.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// rawEvent is the inbound wire envelope before the payload is interpreted.
type rawEvent struct {
	Type    models.EventType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Coordinator.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("read error")
			}
			break
		}

		var ev rawEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Warn().Err(err).Msg("malformed event skipped")
			continue
		}

		// The sender is stamped from the connection, not the wire.
		c.Coordinator.EventCh <- Inbound{SenderID: c.ConnectionID, Type: ev.Type, Payload: ev.Payload}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.log.Warn().Err(err).Str("event", string(ev.Type)).Msg("marshal failed, event skipped")
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
