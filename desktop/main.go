// Command desktop is a spectator client for the relay server. It connects
// to the WebSocket endpoint, mirrors the event stream into a local scene,
// and renders a top-down view of every player and ball in flight. It never
// joins a game, so it is invisible to the players it watches.
package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 800
	screenHeight = 800
	headerHeight = 40

	// World units per pixel; the view is centered on the origin.
	worldScale = 0.1

	playerRadius = 6
	ballRadius   = 3

	ballLifetime = 10 * time.Second
)

// Vec3 mirrors the x/y/z objects on the wire.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Player is the subset of the wire player record the viewer draws.
type Player struct {
	ID       string      `json:"id"`
	Position Vec3        `json:"position"`
	OnFloor  bool        `json:"onFloor"`
	Color    interface{} `json:"color"`
}

// Ball is a thrown projectile; the viewer integrates its position locally
// from the spawn velocity, the same way the browser clients do.
type Ball struct {
	ID        string `json:"id"`
	Position  Vec3   `json:"position"`
	Velocity  Vec3   `json:"velocity"`
	Timestamp int64  `json:"timestamp"`
}

// event is the superset of server broadcast payloads.
type event struct {
	Type     string  `json:"type"`
	Player   *Player `json:"player"`
	PlayerID string  `json:"playerId"`
	Position Vec3    `json:"position"`
	OnFloor  bool    `json:"onFloor"`
	Ball     *Ball   `json:"ball"`
}

// Viewer is the ebiten game loop plus the mirrored relay state.
type Viewer struct {
	baseURL string

	mu      sync.Mutex
	players map[string]*Player
	balls   []*Ball

	connected  bool
	eventCount int
}

func NewViewer(baseURL string) *Viewer {
	return &Viewer{
		baseURL: baseURL,
		players: make(map[string]*Player),
	}
}

// bootstrap seeds the player map from the REST API so the view is complete
// before the first broadcast arrives.
func (v *Viewer) bootstrap() {
	var gamesResp struct {
		Games []struct {
			Name string `json:"name"`
		} `json:"games"`
	}
	if err := fetchJSON(v.baseURL+"/api/games", &gamesResp); err != nil {
		log.Printf("Bootstrap failed, starting empty: %v", err)
		return
	}

	for _, g := range gamesResp.Games {
		var playersResp struct {
			Players []*Player `json:"players"`
		}
		if err := fetchJSON(fmt.Sprintf("%s/api/games/%s/players", v.baseURL, g.Name), &playersResp); err != nil {
			log.Printf("Failed to fetch players for %s: %v", g.Name, err)
			continue
		}
		v.mu.Lock()
		for _, p := range playersResp.Players {
			v.players[p.ID] = p
		}
		v.mu.Unlock()
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

// connectAndListen dials the relay WebSocket and applies broadcasts to the
// scene until the connection drops, then retries.
func (v *Viewer) connectAndListen(wsURL string) {
	for {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			log.Printf("WebSocket dial failed, retrying: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}
		log.Printf("Spectating %s", wsURL)

		v.mu.Lock()
		v.connected = true
		v.mu.Unlock()

		v.listen(conn)
		conn.Close()

		v.mu.Lock()
		v.connected = false
		v.mu.Unlock()
		time.Sleep(time.Second)
	}
}

func (v *Viewer) listen(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("Bad event: %v", err)
			continue
		}
		v.apply(&ev)
	}
}

func (v *Viewer) apply(ev *event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.eventCount++

	switch ev.Type {
	case "playerJoined":
		if ev.Player != nil {
			v.players[ev.Player.ID] = ev.Player
		}
	case "playerUpdate":
		if p, ok := v.players[ev.PlayerID]; ok {
			p.Position = ev.Position
			p.OnFloor = ev.OnFloor
		} else {
			// Update for someone we never saw join; track it anyway
			v.players[ev.PlayerID] = &Player{ID: ev.PlayerID, Position: ev.Position, OnFloor: ev.OnFloor}
		}
	case "playerLeft":
		delete(v.players, ev.PlayerID)
	case "ballThrown":
		if ev.Ball != nil {
			v.balls = append(v.balls, ev.Ball)
		}
	}
}

// Update drops expired balls; everything else is event-driven.
func (v *Viewer) Update() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	cutoff := time.Now().Add(-ballLifetime).UnixMilli()
	live := v.balls[:0]
	for _, b := range v.balls {
		if b.Timestamp >= cutoff {
			live = append(live, b)
		}
	}
	v.balls = live
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()

	status := "connected"
	if !v.connected {
		status = "reconnecting..."
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | players: %d | balls: %d | events: %d",
		status, len(v.players), len(v.balls), v.eventCount))

	// Origin marker
	cx, cy := float32(screenWidth)/2, float32(screenHeight+headerHeight)/2
	vector.StrokeLine(screen, cx-5, cy, cx+5, cy, 1, color.Gray{Y: 80}, false)
	vector.StrokeLine(screen, cx, cy-5, cx, cy+5, 1, color.Gray{Y: 80}, false)

	for _, p := range v.players {
		x, y := worldToScreen(p.Position)
		r := float32(playerRadius)
		if !p.OnFloor {
			// Airborne players draw slightly larger
			r += 2
		}
		vector.DrawFilledCircle(screen, x, y, r, playerColor(p.Color), true)
	}

	now := time.Now().UnixMilli()
	for _, b := range v.balls {
		// Balls fly on a straight line from their spawn; good enough
		// for a spectator
		age := float64(now-b.Timestamp) / 1000
		pos := Vec3{
			X: b.Position.X + b.Velocity.X*age,
			Y: b.Position.Y + b.Velocity.Y*age,
			Z: b.Position.Z + b.Velocity.Z*age,
		}
		x, y := worldToScreen(pos)
		vector.DrawFilledCircle(screen, x, y, ballRadius, color.White, true)
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight + headerHeight
}

// worldToScreen projects the ground plane (x, z) onto the window, centered
// on the origin.
func worldToScreen(pos Vec3) (float32, float32) {
	x := float32(screenWidth)/2 + float32(pos.X/worldScale)
	y := float32(screenHeight+headerHeight)/2 + float32(pos.Z/worldScale)
	return x, y
}

// playerColor turns a wire color (0xRRGGBB integer, "#rrggbb" string, or
// absent) into something drawable. Colorless pengstrike players render grey.
func playerColor(c interface{}) color.Color {
	switch val := c.(type) {
	case float64:
		n := uint32(val)
		return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}
	case string:
		var r, g, b uint8
		if _, err := fmt.Sscanf(val, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 0xff}
		}
	}
	return color.Gray{Y: 180}
}

func main() {
	baseURL := "http://localhost:3000"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}
	wsURL := "ws" + baseURL[len("http"):] + "/ws"

	viewer := NewViewer(baseURL)
	viewer.bootstrap()
	go viewer.connectAndListen(wsURL)

	ebiten.SetWindowSize(screenWidth, screenHeight+headerHeight)
	ebiten.SetWindowTitle("Pengstrike Relay - Spectator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
