// Command gameserver starts the Pengstrike multiplayer relay server.
//
// It supports three modes:
//  1. "server" (default) – runs the combined HTTP server with the REST API,
//     the relay WebSocket, static game assets, and an /mcp HTTP endpoint
//  2. "climbandwin" – runs the standalone climbandwin WebSocket server
//  3. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API
//     if none is available
//
// Flags control host/port, config directory, static asset root, debug
// logging, and optional ngrok tunneling for easy external access during
// development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/pengstrike/gameserver/api"
	"github.com/pengstrike/gameserver/game/config"
	"github.com/pengstrike/gameserver/game/service"
	"github.com/pengstrike/gameserver/transport/mcp"
	"github.com/pengstrike/gameserver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Pengstrike Multiplayer Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "gameserver",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "HTTP server host",
				Value: "localhost",
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP server port",
				Value:   3000,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory containing game settings files",
				Value:   "configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "static-root",
				Usage:   "Directory containing the game assets",
				Value:   ".",
				Sources: cli.EnvVars("STATIC_ROOT"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCombinedServer(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Run the combined HTTP server (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runCombinedServer(cmd)
				},
			},
			{
				Name:  "climbandwin",
				Usage: "Run the standalone climbandwin WebSocket server",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "ws-port",
						Usage: "WebSocket server port",
						Value: 8081,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runClimbandwinServer(cmd)
				},
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run an MCP stdio server, starting an internal HTTP API if needed",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "api-url",
						Usage: "Base URL of an already-running API server",
						Value: "http://localhost:3000",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// combinedGames are the scopes the combined server runs side by side.
func combinedGames() []service.GameDef {
	return []service.GameDef{
		{Name: service.GamePengstrike, Variant: config.VariantPengstrike},
		{Name: service.GameClimbandwin, Variant: config.VariantClimbandwin},
	}
}

// runCombinedServer starts the multi-game HTTP server with REST API,
// WebSocket relay, static assets, and an /mcp proxy endpoint. If ngrok is
// enabled it also provisions a public tunnel.
func runCombinedServer(cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s (mode: server)", AppName, Version)

	cfg := config.NewManager(cmd.String("config-dir"))
	svc, err := service.NewRelayService(cfg, combinedGames()...)
	if err != nil {
		return fmt.Errorf("failed to initialize relay service: %w", err)
	}
	defer svc.Stop()

	// One hub shared across both games
	hub := websocket.NewHub()
	defer hub.Shutdown()

	wsHandler := websocket.NewHandler(hub, svc, websocket.Options{
		DefaultGame: service.GamePengstrike,
	})
	static := api.NewStaticHandler(cmd.String("static-root"))
	apiServer := api.NewServer(svc, wsHandler, static)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))

	// Create MCP client for /mcp endpoint
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		log.Printf("Game UI: http://%s/", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if cmd.Bool("ngrok") {
		go runNgrokTunnel(ctx, cmd, mainRouter)
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// mcpHTTPHandler exposes the MCP server over plain HTTP POST.
func mcpHTTPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
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

// runNgrokTunnel serves the router through a public ngrok endpoint until
// the context is canceled.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	authToken := os.Getenv("NGROK_AUTHTOKEN")
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (set NGROK_AUTHTOKEN)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain := cmd.String("ngrok-domain"); domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)
	log.Printf("  Game UI (ngrok): %s/", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runClimbandwinServer starts the standalone climbandwin relay: a bare
// WebSocket server with no REST API or static assets, where every
// connection joins the single game on connect.
func runClimbandwinServer(cmd *cli.Command) error {
	setupLogging(cmd)
	log.Printf("Starting %s v%s (mode: climbandwin)", AppName, Version)

	cfg := config.NewManager(cmd.String("config-dir"))
	svc, err := service.NewRelayService(cfg, service.GameDef{
		Name:    service.GameClimbandwin,
		Variant: config.VariantClimbandwinStandalone,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize relay service: %w", err)
	}
	defer svc.Stop()

	hub := websocket.NewHub()
	defer hub.Shutdown()

	wsHandler := websocket.NewHandler(hub, svc, websocket.Options{
		Game: service.GameClimbandwin,
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("ws-port")))
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     wsHandler,
		IdleTimeout: 60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("climbandwin server listening on ws://%s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("WebSocket server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// runStdioMCP runs an MCP stdio server. It tries to reuse the API server at
// --api-url; if unavailable, it starts a minimal internal HTTP API bound to
// a random loopback port and targets that.
func runStdioMCP(cmd *cli.Command) error {
	setupLogging(cmd)

	externalURL := cmd.String("api-url")
	log.Printf("Checking for external API server at %s...", externalURL)

	var baseURL string
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		cfg := config.NewManager(cmd.String("config-dir"))
		svc, err := service.NewRelayService(cfg, combinedGames()...)
		if err != nil {
			return fmt.Errorf("failed to initialize relay service: %w", err)
		}
		defer svc.Stop()

		hub := websocket.NewHub()
		defer hub.Shutdown()
		wsHandler := websocket.NewHandler(hub, svc, websocket.Options{
			DefaultGame: service.GamePengstrike,
		})
		apiServer := api.NewServer(svc, wsHandler, nil)

		httpServer := &http.Server{Handler: apiServer}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)
		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
