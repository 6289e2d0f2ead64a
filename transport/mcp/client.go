package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pengstrike/gameserver/game/engine"
	"github.com/pengstrike/gameserver/game/service"
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
		baseURL: baseURL,
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
		"Pengstrike Relay Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Pengstrike Relay Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server relays real-time state between browser clients for two games:
pengstrike (snowball fights, supports thrown balls) and climbandwin
(climbing race, colored players). All tools are read-only observers; game
state is driven entirely by the WebSocket clients.

AVAILABLE TOOLS:
- list_games: All games with player and ball counts
- list_players: Players of one game with positions
- list_balls: Balls currently in flight in one game
- server_stats: Aggregate counts across all games`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all games with current player and ball counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_players",
		Description: "List the players of a game with their positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game": map[string]interface{}{
					"type":        "string",
					"description": "Game name (pengstrike or climbandwin)",
				},
			},
			Required: []string{"game"},
		},
	}, c.handleListPlayers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_balls",
		Description: "List the balls currently in flight in a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game": map[string]interface{}{
					"type":        "string",
					"description": "Game name (pengstrike or climbandwin)",
				},
			},
			Required: []string{"game"},
		},
	}, c.handleListBalls)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get aggregate player and ball counts across all games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
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

// Tool handlers

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Games []service.GameInfo `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Games (%d):\n\n", len(response.Games))
	for _, g := range response.Games {
		result += fmt.Sprintf("- %s: %d players", g.Name, g.Players)
		if g.BallsEnabled {
			result += fmt.Sprintf(", %d balls in flight", g.Balls)
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	game, _ := args["game"].(string)

	var response struct {
		Game    string           `json:"game"`
		Players []*engine.Player `json:"players"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/players", game), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Players in %s (%d):\n\n", game, len(response.Players))
	for _, p := range response.Players {
		result += fmt.Sprintf("- %s at (%.1f, %.1f, %.1f)", p.ID, p.Position.X, p.Position.Y, p.Position.Z)
		if p.Color != nil {
			result += fmt.Sprintf(", color %v", p.Color)
		}
		if p.OnFloor {
			result += ", on floor"
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListBalls(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	game, _ := args["game"].(string)

	var response struct {
		Game  string        `json:"game"`
		Balls []engine.Ball `json:"balls"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/balls", game), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Balls in flight in %s (%d):\n\n", game, len(response.Balls))
	for _, b := range response.Balls {
		result += fmt.Sprintf("- %s thrown at %s from (%.1f, %.1f, %.1f)\n",
			b.ID, time.UnixMilli(b.Timestamp).Format("15:04:05.000"),
			b.Position.X, b.Position.Y, b.Position.Z)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats service.ServerStats

	err := c.apiCall("GET", "/api/stats", nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Server stats:\n\n- Games: %d\n- Players: %d\n- Balls in flight: %d\n",
		stats.Games, stats.Players, stats.Balls)

	return mcp.NewToolResultText(result), nil
}
