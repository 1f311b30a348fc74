// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(url, header)
}

func TestHandler_OriginCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origins []string
		origin  string
		ok      bool
	}{
		{"missing origin", []string{"*"}, "", false},
		{"wildcard", []string{"*"}, "http://example.com", true},
		{"listed", []string{"http://localhost:8501"}, "http://LOCALHOST:8501", true},
		{"unlisted", []string{"http://localhost:8501"}, "http://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hub := setupHub(t)
			srv := httptest.NewServer(NewHandler(hub, tt.origins))
			defer srv.Close()

			conn, resp, err := dial(t, srv, tt.origin)
			if resp != nil && resp.Body != nil {
				defer resp.Body.Close()
			}
			if tt.ok {
				if err != nil {
					t.Fatalf("dial: %v", err)
				}
				conn.Close()
				return
			}
			if err == nil {
				conn.Close()
				t.Fatal("expected handshake to be rejected")
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Errorf("response = %v, want 403", resp)
			}
		})
	}
}

func TestHandler_NilHub(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewHandler(nil, []string{"*"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandler_RoundTrip(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	srv := httptest.NewServer(NewHandler(hub, []string{"*"}))
	defer srv.Close()

	conn, resp, err := dial(t, srv, "http://localhost")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	resp.Body.Close()
	defer conn.Close()
	waitForClients(t, hub, 1)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var pong Message
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if pong.Type != MessageTypePong {
		t.Errorf("type = %q, want pong", pong.Type)
	}

	hub.NotifyReload(4, "local", 9)

	var got struct {
		Type string           `json:"type"`
		Data DataReloadedData `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read reload: %v", err)
	}
	if got.Type != MessageTypeDataReloaded || got.Data.Generation != 4 || got.Data.Rows != 9 {
		t.Errorf("got %+v", got)
	}

	conn.Close()
	waitForClients(t, hub, 0)
}
