// Package websocket provides WebSocket transport for the FreeCell game server.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting of the game state after every change
//   - Forwarding of client input to a handler
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Client registration, broadcasts and cleanup all run
// on the hub goroutine; each connection has its own read and write pumps.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {"keys": "ar"}, {"tokens": ["0", "reserve"]}, {"action": "undo"}
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12) when
// establishing the connection. State updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.OnInput(func(sessionID string, msg websocket.ClientMessage) { ... })
//	go hub.Run()
//	defer hub.Stop()
package websocket
