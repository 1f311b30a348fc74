// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/emotrace/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub starts a hub that stops when the test ends.
func setupHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

// createTestClient creates a client without a connection.
func createTestClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer)}
}

// waitForClients polls until the hub has n clients.
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestNewHub(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	checks := []struct {
		name  string
		check bool
	}{
		{"clients map", hub.clients != nil},
		{"broadcast channel", hub.broadcast != nil},
		{"Register channel", hub.Register != nil},
		{"Unregister channel", hub.Unregister != nil},
		{"empty clients", hub.GetClientCount() == 0},
	}
	for _, c := range checks {
		if !c.check {
			t.Errorf("%s not initialized", c.name)
		}
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	a, b := createTestClient(hub, 4), createTestClient(hub, 4)

	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	hub.Unregister <- a
	waitForClients(t, hub, 1)

	if _, ok := <-a.send; ok {
		t.Error("unregistered client's send channel should be closed")
	}

	// Unregistering twice is harmless.
	hub.Unregister <- a
	waitForClients(t, hub, 1)
}

func TestHub_NotifyReload(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	clients := []*Client{createTestClient(hub, 4), createTestClient(hub, 4)}
	for _, c := range clients {
		hub.Register <- c
	}
	waitForClients(t, hub, len(clients))

	hub.NotifyReload(7, "remote", 120)

	for i, c := range clients {
		msg := receive(t, c)
		if msg.Type != MessageTypeDataReloaded {
			t.Errorf("client %d: type = %q, want %q", i, msg.Type, MessageTypeDataReloaded)
		}
		data, ok := msg.Data.(DataReloadedData)
		if !ok {
			t.Fatalf("client %d: data is %T", i, msg.Data)
		}
		if data.Generation != 7 || data.Source != "remote" || data.Rows != 120 {
			t.Errorf("client %d: data = %+v", i, data)
		}
		if _, err := time.Parse(time.RFC3339, data.Timestamp); err != nil {
			t.Errorf("client %d: timestamp %q: %v", i, data.Timestamp, err)
		}
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	slow := createTestClient(hub, 1)
	fast := createTestClient(hub, 8)
	hub.Register <- slow
	hub.Register <- fast
	waitForClients(t, hub, 2)

	hub.NotifyReload(1, "local", 3)
	receive(t, fast)
	hub.NotifyReload(2, "local", 3)
	receive(t, fast)

	waitForClients(t, hub, 1)
}

func TestHub_BroadcastNeverBlocks(t *testing.T) {
	t.Parallel()

	// Not running: nothing drains the queue.
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.BroadcastJSON(MessageTypePing, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("BroadcastJSON blocked on a full queue")
	}
	if len(hub.broadcast) != cap(hub.broadcast) {
		t.Errorf("queued = %d, want %d", len(hub.broadcast), cap(hub.broadcast))
	}
}

func TestHub_RunWithContext_ClosesClients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ctx    func() (context.Context, context.CancelFunc)
		want   error
		reason ShutdownReason
	}{
		{
			name: "canceled",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			want:   context.Canceled,
			reason: ShutdownReasonContextCanceled,
		},
		{
			name: "deadline",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 300*time.Millisecond)
			},
			want:   context.DeadlineExceeded,
			reason: ShutdownReasonContextDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hub := NewHub()
			ctx, cancel := tt.ctx()
			defer cancel()

			errCh := make(chan error, 1)
			go func() { errCh <- hub.RunWithContext(ctx) }()

			client := createTestClient(hub, 1)
			hub.Register <- client
			waitForClients(t, hub, 1)

			if tt.want == context.Canceled {
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.want) {
					t.Errorf("err = %v, want %v", err, tt.want)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("hub did not stop")
			}

			if got := getShutdownReason(ctx); got != tt.reason {
				t.Errorf("reason = %q, want %q", got, tt.reason)
			}
			if hub.GetClientCount() != 0 {
				t.Errorf("clients = %d after shutdown", hub.GetClientCount())
			}
			if _, ok := <-client.send; ok {
				t.Error("client channel should be closed on shutdown")
			}
		})
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	b, err := MarshalMessage(Message{Type: MessageTypeDataReloaded, Data: DataReloadedData{Generation: 2, Source: "local", Rows: 5, Timestamp: "2026-01-01T00:00:00Z"}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"data_reloaded","data":{"timestamp":"2026-01-01T00:00:00Z","generation":2,"source":"local","rows":5}}`
	if string(b) != want {
		t.Errorf("got %s\nwant %s", b, want)
	}
}
