// Package service provides the business logic layer for the FreeCell game.
//
// The service package implements:
//   - Multi-session game management
//   - Key and token input against a session's table
//   - Undo, redo and sweeping
//   - Recording finished and abandoned games in the stats store
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game tables, providing session isolation and business logic
// orchestration. Each session owns its own table with independent state.
// All calls are serialised by the service, since a table is not safe for
// concurrent use.
//
// Usage:
//
//	sessionMgr := session.NewManager(table.DefaultOptions())
//	gameService := service.NewGameService(sessionMgr, service.Options{AutoSweep: true})
//
//	// Deal a new game
//	sessionInfo, err := gameService.CreateSession(ctx, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the top card of the first column to the reserve
//	result, err := gameService.Input(ctx, sessionInfo.ID, service.InputRequest{Keys: "ar"})
//
// Sweeping:
//
// With AutoSweep on, every successful move, undo or redo is followed by a
// full sweep, so clients see the settled board. Otherwise clients call
// Sweep themselves.
package service
