// Command analyze prints quick, human-readable heuristics about a running
// relay server. It queries the REST API and summarizes per-game player
// counts, player positions, and the age of any balls still in flight,
// flagging players suspiciously far from the play area.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"
)

// GameSummary is a light struct for reading /api/games entries.
type GameSummary struct {
	Name         string `json:"name"`
	Players      int    `json:"players"`
	Balls        int    `json:"balls"`
	BallsEnabled bool   `json:"ballsEnabled"`
}

// PlayerSummary is a light struct for reading player entries.
type PlayerSummary struct {
	ID       string `json:"id"`
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
	OnFloor bool        `json:"onFloor"`
	Color   interface{} `json:"color"`
}

// BallSummary is a light struct for reading ball entries.
type BallSummary struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// farFromOrigin is the horizontal distance beyond which a player has almost
// certainly fallen off the map or broken physics client-side.
const farFromOrigin = 500.0

func main() {
	baseURL := "http://localhost:3000"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	var gamesResp struct {
		Games []GameSummary `json:"games"`
	}
	if err := fetchJSON(baseURL+"/api/games", &gamesResp); err != nil {
		fmt.Printf("Error fetching games: %v\n", err)
		os.Exit(1)
	}

	for _, game := range gamesResp.Games {
		fmt.Printf("\n=== Analyzing %s ===\n", game.Name)
		analyzeGame(baseURL, game)
	}
}

func fetchJSON(url string, out interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func analyzeGame(baseURL string, game GameSummary) {
	fmt.Printf("Players: %d\n", game.Players)
	if game.BallsEnabled {
		fmt.Printf("Balls in flight: %d\n", game.Balls)
	}

	var playersResp struct {
		Players []PlayerSummary `json:"players"`
	}
	if err := fetchJSON(fmt.Sprintf("%s/api/games/%s/players", baseURL, game.Name), &playersResp); err != nil {
		fmt.Printf("Error fetching players: %v\n", err)
		return
	}

	for _, p := range playersResp.Players {
		fmt.Printf("- %s at (%.1f, %.1f, %.1f)", p.ID, p.Position.X, p.Position.Y, p.Position.Z)
		if p.Color != nil {
			fmt.Printf(" color=%v", p.Color)
		}
		if p.OnFloor {
			fmt.Printf(" [on floor]")
		}
		fmt.Println()
	}

	strays := strayPlayers(playersResp.Players)
	if len(strays) > 0 {
		fmt.Printf("⚠️  WARNING: %d players are more than %.0f units from the origin!\n", len(strays), farFromOrigin)
		for _, p := range strays {
			fmt.Printf("   Stray: %s at (%.1f, %.1f, %.1f)\n", p.ID, p.Position.X, p.Position.Y, p.Position.Z)
		}
	} else if len(playersResp.Players) > 0 {
		fmt.Printf("✅ All players are within the play area\n")
	}

	if !game.BallsEnabled {
		return
	}

	var ballsResp struct {
		Balls []BallSummary `json:"balls"`
	}
	if err := fetchJSON(fmt.Sprintf("%s/api/games/%s/balls", baseURL, game.Name), &ballsResp); err != nil {
		fmt.Printf("Error fetching balls: %v\n", err)
		return
	}

	now := time.Now().UnixMilli()
	for _, b := range ballsResp.Balls {
		fmt.Printf("- ball %s, age %dms\n", b.ID, now-b.Timestamp)
	}
}

// strayPlayers returns the players whose horizontal distance from the
// origin exceeds farFromOrigin.
func strayPlayers(players []PlayerSummary) []PlayerSummary {
	var strays []PlayerSummary
	for _, p := range players {
		if math.Hypot(p.Position.X, p.Position.Z) > farFromOrigin {
			strays = append(strays, p)
		}
	}
	return strays
}
