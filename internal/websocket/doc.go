// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package websocket pushes dashboard reload notifications to open pages.

A Hub tracks connected pages; each Client runs a read pump (pings,
disconnect detection) and a write pump (hub messages, keepalive pings).
When the dashboard publishes a new snapshot it calls Hub.NotifyReload and
every page receives:

	{"type":"data_reloaded","data":{"generation":3,"source":"remote","rows":120,"timestamp":"..."}}

Pages reload themselves when the generation is newer than the one they
rendered, so a dashboard that started without data fills in as soon as a
reload succeeds.

Usage:

	hub := websocket.NewHub()
	tree.AddAPIService(services.NewWebSocketHubService(hub))
	r.Handle("/ws", websocket.NewHandler(hub, cfg.Security.CORSOrigins))

Broadcasts never block: a full hub queue drops the message, and a client
whose send buffer is full is disconnected.
*/
package websocket
