// Package api provides HTTP REST API handlers for the FreeCell game server.
//
// The api package implements:
//   - Session management endpoints
//   - Key and token input, undo, redo and sweep
//   - Stats endpoints
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Deal a new game, optional body {"seed": 1234}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session; a played game counts as abandoned
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board
//   - POST /api/sessions/{id}/input - {"keys": "ar"} or {"tokens": ["0", "reserve"]}
//   - POST /api/sessions/{id}/undo
//   - POST /api/sessions/{id}/redo
//   - POST /api/sessions/{id}/sweep - Send every safe card home
//
// Stats:
//   - GET /api/stats
//   - DELETE /api/stats
//
// WebSocket:
//   - GET /ws?session={id}
//
// Usage:
//
//	hub := websocket.NewHub()
//	server := api.NewServer(gameService, hub)
//	go hub.Run()
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code: 400 for malformed
// input, 404 for unknown sessions, 409 for duplicate IDs, 500 otherwise.
//
//	{
//	  "error": "session not found"
//	}
package api
