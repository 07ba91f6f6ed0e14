// Command validate checks persisted session files. It reads every *.json
// file in the sessions directory (first argument, or the configured
// sessions directory) and checks:
//   - JSON structure and the presence of a game field
//   - The session ID is usable as a file name and matches the file
//   - The board holds each of the 52 cards exactly once
//   - Every history snapshot is a valid board and the cursor is in range
//   - The won flag agrees with the board
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/session"
	"github.com/wricardo/freecell/game/stats"
	"github.com/wricardo/freecell/game/table"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateSession loads and validates a single session file
func validateSession(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	sess, err := session.DecodeSessionData(data)
	if err != nil {
		result.fail("Invalid session data: %v", err)
		return result
	}

	if !session.ValidSessionID(sess.ID) {
		result.fail("Invalid session id %q", sess.ID)
	} else if name := strings.TrimSuffix(result.File, filepath.Ext(result.File)); !strings.EqualFold(name, sess.ID) {
		result.fail("File name %q does not match session id %q", name, sess.ID)
	}

	if !sess.LastAccessedAt.IsZero() && sess.LastAccessedAt.Before(sess.CreatedAt) {
		result.fail("last_accessed_at (%s) is before created_at (%s)", sess.LastAccessedAt, sess.CreatedAt)
	}

	tbl, err := table.Restore(sess.Game, table.Options{})
	if err != nil {
		result.fail("Invalid game state: %v", err)
		return result
	}

	if boardWon := tbl.Engine().IsWon(); boardWon != sess.Game.Won {
		result.fail("Won flag is %t but the board says %t", sess.Game.Won, boardWon)
	}
	if sess.Game.ElapsedSeconds < 0 {
		result.fail("elapsed_seconds cannot be negative, got %d", sess.Game.ElapsedSeconds)
	}

	// Add informational data
	if result.Valid {
		status := "in progress"
		if tbl.Won() {
			status = "won"
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Session: %s", sess.ID),
			fmt.Sprintf("✓ Seed: %d", tbl.Seed()),
			fmt.Sprintf("✓ Status: %s", status),
			fmt.Sprintf("✓ Cards home: %d/%d", engine.DeckSize-tbl.Engine().Remaining(), engine.DeckSize),
			fmt.Sprintf("✓ Moves: %d", tbl.Moves()),
			fmt.Sprintf("✓ Time: %s", stats.FormatTime(sess.Game.ElapsedSeconds)),
		)
	}

	return result
}

// sessionsDir returns the directory named on the command line, or the one
// from the configuration file
func sessionsDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := config.Load(config.GetConfigFilePath())
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return "", err
	}
	return cfg.SessionsPath(), nil
}

// main validates each session file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	dir, err := sessionsDir(os.Args[1:])
	if err != nil {
		color.Red("Error reading configuration: %v", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		color.Red("Error finding session files: %v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No session files in %s\n", dir)
		return
	}

	if !report(files) {
		os.Exit(1)
	}
}

// report prints the result for every file and whether all were valid
func report(files []string) bool {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	allValid := true
	for _, file := range files {
		result := validateSession(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			ok.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			bad.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		ok.Println("✅ All sessions are valid!")
	} else {
		bad.Println("❌ Some sessions have errors")
	}
	return allValid
}
