package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

const (
	EventNewAlert           = "new_alert"
	EventAlertAcknowledged  = "alert_acknowledged"
	EventCameraStatusUpdate = "camera_status_update"
)

// Envelope wraps every pushed message with its event name
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to all connected WebSocket clients. Delivery is
// best-effort and at-most-once per subscriber: a full queue or a
// missed write deadline drops the message (or the client) without
// touching anyone else. Clients that miss a push catch up through the
// pull endpoints, which stay authoritative.
type Hub struct {
	log     zerolog.Logger
	metrics *metrics.Metrics

	sendBuffer   int
	writeTimeout time.Duration
	pingInterval time.Duration

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates the fan-out hub
func NewHub(cfg *config.Config, m *metrics.Metrics) *Hub {
	return &Hub{
		log:          logging.NewServiceLogger("hub"),
		metrics:      m,
		sendBuffer:   cfg.WSSendBuffer,
		writeTimeout: cfg.WSWriteTimeout,
		pingInterval: cfg.WSPingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Dashboard may be served from a different origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*Client),
	}
}

// ServeWS upgrades the request and registers the connection as a
// subscriber
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[client.id] = client
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveClients.Store(uint64(count))
		h.metrics.TotalClients.Add(1)
	}
	h.log.Info().Str("client_id", client.id).Int("clients", count).Msg("WebSocket client connected")

	go client.writePump(h.writeTimeout, h.pingInterval)
	go client.readPump(h.pingInterval)
	return nil
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	count := len(h.clients)
	// Closed under the write lock so a concurrent broadcast, which
	// sends under the read lock, can never hit a closed channel
	close(c.send)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveClients.Store(uint64(count))
	}
	h.log.Info().Str("client_id", c.id).Int("clients", count).Msg("WebSocket client disconnected")
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast marshals the event once and offers it to every client.
// A client whose queue is full loses this message only.
func (h *Hub) broadcast(event string, data interface{}) {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("Failed to marshal broadcast payload")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.send <- msg:
		default:
			if h.metrics != nil {
				h.metrics.BroadcastDropped.Add(1)
			}
			h.log.Warn().
				Str("client_id", client.id).
				Str("event", event).
				Msg("Subscriber queue full, message dropped")
		}
	}
}

// BroadcastNewAlert pushes a newly persisted alert to all subscribers
func (h *Hub) BroadcastNewAlert(a models.Alert) {
	h.broadcast(EventNewAlert, models.NewAlertEventFrom(a))
}

// BroadcastAlertAcknowledged tells open dashboards to drop the alert
// from their pending view
func (h *Hub) BroadcastAlertAcknowledged(ev models.AlertAcknowledgedEvent) {
	h.broadcast(EventAlertAcknowledged, ev)
}

// BroadcastCameraStatus pushes a camera status change
func (h *Hub) BroadcastCameraStatus(ev models.CameraStatusEvent) {
	h.broadcast(EventCameraStatusUpdate, ev)
}

// Shutdown closes all client connections
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
		c.conn.Close()
	}
}
