// Package session provides session management for the FreeCell game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - JSON file persistence of tables, history included
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns one table dealt from a seed, plus metadata like
// creation time and last access time.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand. Explicit IDs may use
// letters, digits, '-' and '_'. Lookups are case-insensitive.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence(dir, table.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(table.DefaultOptions(), persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", 1234)
//
// Cleanup:
//
// CleanupExpiredSessions drops idle sessions from memory. Their files stay
// on disk and are loaded again on the next Get.
package session
