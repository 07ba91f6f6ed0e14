package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/stats"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"FreeCell",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`FreeCell - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build all four foundation piles from Ace to King by suit.

AVAILABLE TOOLS:
- create_session: Deal a new game, optionally from a seed
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the board of a session
- play: Send keys or tokens; two tokens make one move (source, destination)
- undo / redo: Step through the move history
- sweep: Send every safe card to the foundation
- stats: Games played, won and timings
- game_instructions: Full rules and input reference

NOTE: The 'intent' parameter on play serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Deal a new game. The same seed always deals the same cards.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Deal seed (optional, random when omitted)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play",
		Description: "Feed input to the game. Use either keys (e.g. \"ar\" moves column A to the reserve) or tokens (e.g. [\"0\", \"reserve\"]).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"keys": map[string]interface{}{
					"type":        "string",
					"description": "Key presses: a-k columns, r reserve, t foundation, space cancel",
				},
				"tokens": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tokens: column or slot index 0-7, \"reserve\", \"pile\", \"cancel\"",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What you are trying to achieve with this input",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the last move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "redo",
		Description: "Redo the last undone move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRedo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "sweep",
		Description: "Send every card that is safe to play to the foundation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleSweep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "stats",
		Description: "Show games played and won",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of FreeCell and how to express moves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionArg(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	id, _ := arguments(request)["session_id"].(string)
	if id == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return id, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if seed, ok := args["seed"].(float64); ok {
		if seed < 0 {
			return mcp.NewToolResultError("seed must not be negative"), nil
		}
		body["seed"] = uint64(seed)
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nSeed: %d\n\n%s", session.ID, session.Seed, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", response.Count)
	for _, s := range response.Sessions {
		b.WriteString(formatSessionInfo(s))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := sessionArg(request)
	if errResult != nil {
		return errResult, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session) + "\n" + formatGameState(session.GameState)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := sessionArg(request)
	if errResult != nil {
		return errResult, nil
	}

	var state service.GameState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := sessionArg(request)
	if errResult != nil {
		return errResult, nil
	}
	args := arguments(request)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = args["intent"]

	var body service.InputRequest
	body.Keys, _ = args["keys"].(string)
	if raw, ok := args["tokens"].([]interface{}); ok {
		for _, t := range raw {
			switch v := t.(type) {
			case string:
				body.Tokens = append(body.Tokens, v)
			case float64:
				body.Tokens = append(body.Tokens, fmt.Sprintf("%d", int(v)))
			}
		}
	}
	if body.Keys == "" && len(body.Tokens) == 0 {
		return mcp.NewToolResultError("keys or tokens are required"), nil
	}

	var result service.InputResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/input", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatInputResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.history(ctx, request, "undo")
}

func (c *Client) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.history(ctx, request, "redo")
}

func (c *Client) history(ctx context.Context, request mcp.CallToolRequest, op string) (*mcp.CallToolResult, error) {
	sessionID, errResult := sessionArg(request)
	if errResult != nil {
		return errResult, nil
	}

	var result service.HistoryResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, op), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("Nothing to %s", op)
	if result.Changed {
		header = fmt.Sprintf("%s done", strings.ToUpper(op[:1])+op[1:])
		if result.Swept > 0 {
			header += fmt.Sprintf(", %d cards swept home", result.Swept)
		}
	}
	return mcp.NewToolResultText(header + "\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleSweep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := sessionArg(request)
	if errResult != nil {
		return errResult, nil
	}

	var result service.SweepResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/sweep", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("%d cards swept home", result.Swept)
	return mcp.NewToolResultText(header + "\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var info service.StatsInfo
	if err := c.apiCall(ctx, "GET", "/api/stats", nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStats(&info)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `FreeCell - Complete Instructions

GAME OBJECTIVE:
Move all 52 cards to the four foundation piles, one pile per suit, from Ace up
to King.

LAYOUT:
- Reserve: four free cells, each holding one card
- Foundation: four piles, built up by suit from Ace
- Columns: eight columns dealt face up; only the bottom card of a column is free

BOARD LEGEND:
The first row shows the reserve, a bar, then the top card of each foundation
pile. ".." is an empty slot. The letter row labels the columns, and the
columns follow with the free card at the bottom. Cards are written rank then
suit: A 2-10 J Q K and C D H S, e.g. "10D" is the ten of diamonds.

RULES:
- A card may go onto a column whose bottom card is one rank higher and of the
  opposite colour, or onto an empty column
- A card may go to the foundation pile of its suit when it is the next rank
- Any free card may go to an empty reserve cell
- A run of ordered, alternating cards moves as a group when there is room:
  (empty reserve cells + 1) x 2^(empty columns), halved when the target column
  is empty
- Cards on the foundation never move again

MOVEMENT COMMANDS:
Each move is two inputs: a source then a destination.
- keys: a s d f g h j k select columns A-H, r the reserve, t the foundation,
  space cancels. After r, a column key picks reserve cell 1-4.
  Example: "ar" moves the bottom card of column A to a free reserve cell;
  "rat" moves reserve cell 1 to the foundation.
- tokens: "0".."7" for columns or reserve cells, "reserve", "pile", "cancel".
  Example: ["2", "pile"] sends the bottom card of column C home.

AUTOMATIC PLAY:
After each move, cards that can no longer help build a column are swept to
the foundation automatically. The sweep tool runs it on demand.

VICTORY CONDITIONS:
The game is won when all 52 cards are on the foundation. Finished and
abandoned games are counted in stats.

Good luck clearing the board!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	status := "in progress"
	if session.GameState != nil {
		switch {
		case session.GameState.Won:
			status = "won"
		case session.GameState.Moves == 0:
			status = "new"
		}
	}
	return fmt.Sprintf("- %s (seed %d, %s, last accessed %s)\n",
		session.ID, session.Seed, status, session.LastAccessedAt.Format(time.RFC3339))
}

func formatGameState(state *service.GameState) string {
	if state == nil {
		return "Game state: unavailable"
	}

	var b strings.Builder
	if state.Won {
		b.WriteString("🎉 VICTORY!\n")
	}
	b.WriteString(state.Board)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Seed: %d | Time: %s | Moves: %d | Cards left: %d\n",
		state.Seed, state.Elapsed, state.Moves, state.Remaining)
	fmt.Fprintf(&b, "Free reserve cells: %d | Empty columns: %d\n", state.FreeReserve, state.FreeColumns)

	var flags []string
	if state.CanUndo {
		flags = append(flags, "undo")
	}
	if state.CanRedo {
		flags = append(flags, "redo")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "Available: %s\n", strings.Join(flags, ", "))
	}
	if len(state.Pending) > 0 {
		fmt.Fprintf(&b, "Pending input: %s\n", strings.Join(state.Pending, " "))
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	return b.String()
}

func formatInputResult(result *service.InputResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %d move(s) made", result.Moved)
	} else {
		fmt.Fprintf(&b, "✗ Input rejected: %s", result.Message)
	}
	if result.Swept > 0 {
		fmt.Fprintf(&b, ", %d cards swept home", result.Swept)
	}
	b.WriteString("\n")

	for i, step := range result.Steps {
		line := fmt.Sprintf("%d. %s %s", i+1, step.Token, step.Status)
		if step.Message != "" {
			line += ": " + step.Message
		}
		b.WriteString(line + "\n")
	}
	if result.StatsSaved {
		b.WriteString("Game recorded in stats\n")
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatStats(info *service.StatsInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games played: %d\n", info.Games)
	fmt.Fprintf(&b, "Games won: %d (%d%%)\n", info.Won, info.WinRate)
	if info.Won > 0 {
		fmt.Fprintf(&b, "Average time: %s\n", stats.FormatTime(info.AverageTime))
		fmt.Fprintf(&b, "Best time: %s\n", stats.FormatTime(info.LowestTime))
		fmt.Fprintf(&b, "Worst time: %s\n", stats.FormatTime(info.HighestTime))
	}

	if len(info.Recent) > 0 {
		b.WriteString("\nRecent games:\n")
		for _, g := range info.Recent {
			result := "abandoned"
			if g.Won {
				result = "won in " + stats.FormatTime(g.Seconds)
			}
			fmt.Fprintf(&b, "- seed %d: %s, %d moves\n", g.Seed, result, g.Moves)
		}
	}
	return b.String()
}
