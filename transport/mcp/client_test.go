package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:3000"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

// newAPIStub serves canned JSON per path, in the shape of the REST API.
func newAPIStub(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "unknown game: " + r.URL.Path})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func callToolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	if args != nil {
		req.Params.Arguments = args
	}
	return req
}

func TestHandleListGames(t *testing.T) {
	srv := newAPIStub(t, map[string]interface{}{
		"/api/games": map[string]interface{}{
			"games": []map[string]interface{}{
				{"name": "pengstrike", "players": 2, "balls": 1, "ballsEnabled": true},
				{"name": "climbandwin", "players": 3, "balls": 0, "ballsEnabled": false},
			},
		},
	})
	client := NewClient(srv.URL)

	result, err := client.handleListGames(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleListGames returned error: %v", err)
	}

	text := callToolText(t, result)
	if !strings.Contains(text, "pengstrike: 2 players, 1 balls in flight") {
		t.Errorf("Unexpected games text: %q", text)
	}
	if !strings.Contains(text, "climbandwin: 3 players\n") {
		t.Errorf("Expected climbandwin without ball count, got: %q", text)
	}
}

func TestHandleListPlayers(t *testing.T) {
	srv := newAPIStub(t, map[string]interface{}{
		"/api/games/climbandwin/players": map[string]interface{}{
			"game": "climbandwin",
			"players": []map[string]interface{}{
				{
					"id":       "p1",
					"position": map[string]float64{"x": 1.5, "y": 10, "z": -2},
					"color":    "#ff0000",
					"onFloor":  true,
				},
			},
		},
	})
	client := NewClient(srv.URL)

	result, err := client.handleListPlayers(context.Background(),
		toolRequest(map[string]interface{}{"game": "climbandwin"}))
	if err != nil {
		t.Fatalf("handleListPlayers returned error: %v", err)
	}

	text := callToolText(t, result)
	if !strings.Contains(text, "p1 at (1.5, 10.0, -2.0)") {
		t.Errorf("Unexpected players text: %q", text)
	}
	if !strings.Contains(text, "color #ff0000") {
		t.Errorf("Expected color in players text: %q", text)
	}
	if !strings.Contains(text, "on floor") {
		t.Errorf("Expected onFloor in players text: %q", text)
	}
}

func TestHandleListPlayersUnknownGame(t *testing.T) {
	srv := newAPIStub(t, nil)
	client := NewClient(srv.URL)

	result, err := client.handleListPlayers(context.Background(),
		toolRequest(map[string]interface{}{"game": "tetris"}))
	if err != nil {
		t.Fatalf("handleListPlayers returned error: %v", err)
	}

	if !result.IsError {
		t.Error("Expected an error result for unknown game")
	}
}

func TestHandleListBalls(t *testing.T) {
	srv := newAPIStub(t, map[string]interface{}{
		"/api/games/pengstrike/balls": map[string]interface{}{
			"game": "pengstrike",
			"balls": []map[string]interface{}{
				{
					"id":        "b1",
					"position":  map[string]float64{"x": 1, "y": 2, "z": 3},
					"velocity":  map[string]float64{"y": 5},
					"timestamp": 1700000000000,
				},
			},
		},
	})
	client := NewClient(srv.URL)

	result, err := client.handleListBalls(context.Background(),
		toolRequest(map[string]interface{}{"game": "pengstrike"}))
	if err != nil {
		t.Fatalf("handleListBalls returned error: %v", err)
	}

	text := callToolText(t, result)
	if !strings.Contains(text, "Balls in flight in pengstrike (1)") {
		t.Errorf("Unexpected balls text: %q", text)
	}
	if !strings.Contains(text, "b1 thrown at") {
		t.Errorf("Expected ball entry in text: %q", text)
	}
}

func TestHandleServerStats(t *testing.T) {
	srv := newAPIStub(t, map[string]interface{}{
		"/api/stats": map[string]interface{}{
			"games":   2,
			"players": 5,
			"balls":   3,
		},
	})
	client := NewClient(srv.URL)

	result, err := client.handleServerStats(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleServerStats returned error: %v", err)
	}

	text := callToolText(t, result)
	for _, want := range []string{"Games: 2", "Players: 5", "Balls in flight: 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in stats text: %q", want, text)
		}
	}
}

func TestApiCallErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown game: tetris"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.apiCall("GET", "/api/games/tetris/players", nil, nil)
	if err == nil {
		t.Fatal("Expected error from 404 response")
	}
	if err.Error() != "unknown game: tetris" {
		t.Errorf("Expected API error message, got %q", err.Error())
	}
}
