// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/emotrace/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Pages only ever send {"type":"ping"}.
	maxMessageSize = 4 * 1024

	clientBuffer = 16
)

var clientIDCounter atomic.Uint64

// Client is one open dashboard page. The hub writes to send; the client's
// write loop owns the connection for writing and its read loop for reading.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient creates a client. IDs increase in connection order and fix the
// order in which broadcasts reach clients.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, clientBuffer),
	}
}

// ID returns the connection-order identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Start runs the read and write loops until the connection closes.
func (c *Client) Start() {
	go c.writeLoop()
	go c.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn().Err(err).Uint64("client", c.id).Msg("dashboard page disconnected abnormally")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		var msg Message
		if json.Unmarshal(payload, &msg) != nil || msg.Type != MessageTypePing {
			continue
		}
		select {
		case c.send <- Message{Type: MessageTypePong}:
		default:
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case first, ok := <-c.send:
			if !ok {
				c.writeClose()
				return
			}
			batch, open := c.drain(first)
			for _, msg := range coalesceReloads(batch) {
				if err := c.writeMessage(msg); err != nil {
					logging.Debug().Err(err).Uint64("client", c.id).Msg("websocket write failed")
					return
				}
			}
			if !open {
				c.writeClose()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drain collects first plus whatever is already queued. open is false when
// the hub closed the channel while draining.
func (c *Client) drain(first Message) (batch []Message, open bool) {
	batch = append(batch, first)
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return batch, false
			}
			batch = append(batch, msg)
		default:
			return batch, true
		}
	}
}

func (c *Client) writeMessage(msg Message) error {
	payload, err := MarshalMessage(msg)
	if err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Client) writeClose() {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// coalesceReloads keeps only the last data_reloaded message of a batch, at
// its position; a page only needs the newest generation. Other messages
// pass through in order.
func coalesceReloads(batch []Message) []Message {
	last := -1
	for i, msg := range batch {
		if msg.Type == MessageTypeDataReloaded {
			last = i
		}
	}
	if last < 0 {
		return batch
	}

	out := batch[:0:0]
	for i, msg := range batch {
		if msg.Type == MessageTypeDataReloaded && i != last {
			continue
		}
		out = append(out, msg)
	}
	return out
}
