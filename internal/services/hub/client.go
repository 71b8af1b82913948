package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

// Client is one connected dashboard session. Each client owns a
// bounded send queue; the hub never blocks on a slow client.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// writePump drains the send queue onto the socket. A write that misses
// the deadline or fails drops only this client.
func (c *Client) writePump(writeTimeout, pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.hub.unregister(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes and discards inbound frames so pong handling and
// close detection work
func (c *Client) readPump(pingInterval time.Duration) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	readWait := pingInterval * 2
	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
