// Command freecell plays FreeCell in the terminal and serves it to other
// clients.
//
// Commands:
//  1. "play" (default) – the terminal game
//  2. "serve" – HTTP server exposing the REST API, WebSocket and an /mcp endpoint
//  3. "mcp" – MCP stdio server; spins up an internal HTTP API if none is running
//  4. "stats" – prints or clears the recorded stats
//
// Settings come from the TOML configuration file; flags and environment
// variables override them for a single run.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/freecell/api"
	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/session"
	"github.com/wricardo/freecell/game/stats"
	"github.com/wricardo/freecell/game/table"
	"github.com/wricardo/freecell/transport/mcp"
	"github.com/wricardo/freecell/transport/websocket"
	"github.com/wricardo/freecell/tui"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "FreeCell"
)

// app carries the configuration loaded before any command runs
type app struct {
	cfg *config.Config
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:           "freecell",
		Usage:          "FreeCell solitaire for the terminal, HTTP and MCP",
		Version:        Version,
		DefaultCommand: "play",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "configuration file (default: $XDG_CONFIG_HOME/freecell/config.toml)",
				Sources: cli.EnvVars("FREECELL_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "seed", Usage: "deal this game instead of a random one"},
					&cli.StringFlag{Name: "log-file", Usage: "write logs to this file while playing"},
				},
				Action: a.runPlay,
			},
			{
				Name:  "serve",
				Usage: "run the HTTP server with REST API, WebSocket and MCP endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "HTTP server host", Sources: cli.EnvVars("FREECELL_HOST")},
					&cli.IntFlag{Name: "port", Usage: "HTTP server port", Sources: cli.EnvVars("FREECELL_PORT")},
					&cli.StringFlag{Name: "sessions-dir", Usage: "directory for persisted sessions"},
					&cli.BoolFlag{Name: "ngrok", Usage: "enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
					&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
					&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
				},
				Action: a.runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "run an MCP stdio server",
				Action:  a.runMCP,
			},
			{
				Name:  "stats",
				Usage: "show the recorded stats",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "clear", Usage: "reset the stats"},
					&cli.IntFlag{Name: "recent", Value: 10, Usage: "number of recent games to list"},
				},
				Action: a.runStats,
			},
		},
	}
}

// before sets up logging and loads the configuration file
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	manager, err := config.NewManager(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = manager.Get()
	return ctx, nil
}

func (a *app) tableOptions() table.Options {
	return table.Options{
		SweepBatch: a.cfg.Game.SweepBatch,
		Keymap:     a.cfg.Keys,
	}
}

func (a *app) openStats() (stats.Store, io.Closer, error) {
	store, closer, err := stats.Open(a.cfg.Stats.Backend, a.cfg.StatsPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stats: %w", err)
	}
	return store, closer, nil
}

// runPlay runs the terminal game. Log output would corrupt the screen, so
// it goes to --log-file or nowhere.
func (a *app) runPlay(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String("log-file"); path != "" {
		f, err := tea.LogToFile(path, "freecell")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	store, closer, err := a.openStats()
	if err != nil {
		return err
	}
	defer closer.Close()

	var seed *uint64
	if cmd.IsSet("seed") {
		s := cmd.Uint64("seed")
		seed = &s
	}

	model := tui.New(seed, tui.Options{
		Table:          a.tableOptions(),
		Stats:          store,
		TickInterval:   a.cfg.TickInterval(),
		MessageTimeout: a.cfg.MessageTimeout(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// ngrokOptions configures the optional tunnel of the serve command
type ngrokOptions struct {
	enabled   bool
	authToken string
	domain    string
}

func (a *app) runServe(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		a.cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		a.cfg.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("sessions-dir") {
		a.cfg.Server.SessionsDir = cmd.String("sessions-dir")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameService, closer, err := initializeServices(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer closer.Close()

	runHTTPServer(ctx, gameService, a.cfg, ngrokOptions{
		enabled:   cmd.Bool("ngrok"),
		authToken: cmd.String("ngrok-auth"),
		domain:    cmd.String("ngrok-domain"),
	})
	return nil
}

func (a *app) runMCP(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return runStdioMCPWithInternalServer(ctx, a.cfg)
}

func (a *app) runStats(ctx context.Context, cmd *cli.Command) error {
	store, closer, err := a.openStats()
	if err != nil {
		return err
	}
	defer closer.Close()

	if cmd.Bool("clear") {
		if err := stats.Clear(store); err != nil {
			return fmt.Errorf("failed to clear stats: %w", err)
		}
		color.Green("Stats cleared")
		return nil
	}

	st, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	var games []stats.Game
	if logger, ok := store.(stats.GameLogger); ok {
		if games, err = logger.RecentGames(cmd.Int("recent")); err != nil {
			log.Printf("Warning: Failed to read game log: %v", err)
		}
	}
	printStats(color.Output, st, games)
	return nil
}

func printStats(w io.Writer, st stats.Stats, games []stats.Game) {
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Bold)

	heading.Fprintln(w, "FreeCell stats")
	label.Fprint(w, "Games played: ")
	fmt.Fprintf(w, "%5d\n", st.Games)
	label.Fprint(w, "Games won:    ")
	fmt.Fprintf(w, "%5d (%d%%)\n", st.Won, st.WinRate())
	label.Fprint(w, "Average time: ")
	fmt.Fprintf(w, "%5s\n", stats.FormatTime(st.AverageTime()))
	label.Fprint(w, "Lowest time:  ")
	fmt.Fprintf(w, "%5s\n", stats.FormatTime(st.LowestTime))
	label.Fprint(w, "Highest time: ")
	fmt.Fprintf(w, "%5s\n", stats.FormatTime(st.HighestTime))

	if len(games) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "Recent games")
	won := color.New(color.FgGreen)
	lost := color.New(color.FgRed)
	for _, g := range games {
		when := g.FinishedAt.Local().Format("2006-01-02 15:04")
		if g.Won {
			won.Fprintf(w, "  %s  #%-10d won in %s, %d moves\n", when, g.Seed, stats.FormatTime(g.Seconds), g.Moves)
		} else {
			lost.Fprintf(w, "  %s  #%-10d abandoned, %d moves\n", when, g.Seed, g.Moves)
		}
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService, cfg *config.Config, tunnel ngrokOptions) {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	// Create MCP client for /mcp endpoint
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server failed: %v", err)
			cancel()
		}
	}()

	if tunnel.enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, tunnel)
		}()
	}

	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case <-ctx.Done():
		log.Println("Shutting down...")
	}
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// mcpHandler answers JSON-RPC messages posted to /mcp
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts ngrokOptions) {
	if opts.authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var endpoint ngrokConfig.Tunnel
	if opts.domain != "" {
		endpoint = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.domain))
		log.Printf("Using custom ngrok domain: %s", opts.domain)
	} else {
		endpoint = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, endpoint, ngrok.WithAuthtoken(opts.authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires session persistence, stats and the game service.
// It also starts the background routines that prune stale sessions; they
// stop with ctx. The returned closer releases the stats store.
func initializeServices(ctx context.Context, cfg *config.Config) (service.GameService, io.Closer, error) {
	opts := table.Options{SweepBatch: cfg.Game.SweepBatch, Keymap: cfg.Keys}

	persistence, err := session.NewFilePersistence(cfg.SessionsPath(), opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(opts, persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	store, closer, err := stats.Open(cfg.Stats.Backend, cfg.StatsPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stats: %w", err)
	}

	gameService := service.NewGameService(sessionManager, service.Options{
		AutoSweep: cfg.Server.AutoSweep,
		Stats:     store,
	})

	go sessionCleanupRoutine(ctx, sessionManager, time.Hour, 24*time.Hour)
	go filesystemSyncRoutine(ctx, sessionManager, persistence, 5*time.Second)

	return gameService, closer, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within maxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every, maxAge time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine drops sessions from memory once their files are deleted
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruneDeletedSessions(manager, persistence)
		}
	}
}

func pruneDeletedSessions(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Printf("Pruned session %s from memory (file deleted)", sess.ID)
		}
	}
	if pruned > 0 {
		log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an API already listening on the configured address; if there is
// none, it starts an internal HTTP API on a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, cfg *config.Config) error {
	externalURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	if !apiAvailable(externalURL) {
		log.Printf("No external API server found, starting internal HTTP server")

		gameService, closer, err := initializeServices(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer closer.Close()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
		log.Println("MCP stdio server ready (using internal HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using external HTTP server)")
	}

	mcpClient := mcp.NewClient(baseURL)
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a FreeCell API answers its health check at baseURL
func apiAvailable(baseURL string) bool {
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
