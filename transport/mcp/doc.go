// Package mcp provides a Model Context Protocol server for FreeCell.
//
// The server is a thin client of the REST API: every tool call becomes an
// HTTP request against /api and the JSON response is rendered as text an
// agent can read, including the board drawing.
//
// MCP Tools:
//   - create_session: deal a new game, optionally from a seed
//   - list_sessions, get_session: inspect sessions
//   - game_state: the board of a session
//   - play: feed keys ("ar") or tokens (["0", "reserve"])
//   - undo, redo, sweep: history and foundation sweeping
//   - stats: games played and won
//   - game_instructions: rules and input reference
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
