// Command loadbot connects a swarm of fake players to a relay server and
// drives them with simulated movement, for soak-testing broadcast fan-out.
// Each bot joins a game, walks a random path, throws the occasional ball in
// games that support it, and counts the events it receives back.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var (
	serverURL  = flag.String("url", "ws://localhost:3000/ws", "WebSocket URL of the relay server")
	numBots    = flag.Int("bots", 10, "Number of concurrent bot connections")
	game       = flag.String("game", "pengstrike", "Game to join (pengstrike or climbandwin)")
	duration   = flag.Duration("duration", 30*time.Second, "How long to run")
	tickRate   = flag.Duration("tick", 100*time.Millisecond, "Delay between position updates per bot")
	standalone = flag.Bool("standalone", false, "Target a standalone server (skip the gameType handshake)")
)

// stats are shared across all bots and reported at the end of the run.
type stats struct {
	sent     atomic.Int64
	received atomic.Int64
	errors   atomic.Int64
}

func main() {
	flag.Parse()

	log.Printf("Starting %d bots against %s (game: %s) for %s", *numBots, *serverURL, *game, *duration)

	var st stats
	deadline := time.Now().Add(*duration)

	var wg sync.WaitGroup
	for i := 0; i < *numBots; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := runBot(n, deadline, &st); err != nil {
				st.errors.Add(1)
				log.Printf("bot %d: %v", n, err)
			}
		}(i)
		// Stagger dials so the server sees a ramp, not a thundering herd
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	fmt.Printf("\nSent: %d messages\n", st.sent.Load())
	fmt.Printf("Received: %d messages\n", st.received.Load())
	fmt.Printf("Errors: %d\n", st.errors.Load())

	if st.errors.Load() > 0 {
		os.Exit(1)
	}
}

func runBot(n int, deadline time.Time, st *stats) error {
	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	if !*standalone {
		if err := conn.WriteJSON(map[string]string{"type": "gameType", "gameType": *game}); err != nil {
			return fmt.Errorf("gameType failed: %w", err)
		}
		st.sent.Add(1)
	}

	// Drain incoming broadcasts so the server never sees a full buffer
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
			st.received.Add(1)
		}
	}()

	walker := newWalker(n)
	throwBalls := *game == "pengstrike" && !*standalone

	for time.Now().Before(deadline) {
		msg := walker.step()
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
		st.sent.Add(1)

		if throwBalls && walker.rng.Intn(50) == 0 {
			if err := conn.WriteJSON(walker.throw()); err != nil {
				return fmt.Errorf("throw failed: %w", err)
			}
			st.sent.Add(1)
		}

		time.Sleep(*tickRate)
	}

	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// vec is the x/y/z shape the relay protocol uses everywhere.
type vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// walker produces a plausible movement stream: a drifting random walk on
// the ground plane with small hops.
type walker struct {
	rng     *rand.Rand
	pos     vec
	heading float64
	airTime int
}

func newWalker(seed int) *walker {
	rng := rand.New(rand.NewSource(int64(seed) + time.Now().UnixNano()))
	return &walker{
		rng:     rng,
		pos:     vec{X: rng.Float64()*20 - 10, Y: 1, Z: rng.Float64()*20 - 10},
		heading: rng.Float64() * 6.28,
	}
}

func (w *walker) step() map[string]interface{} {
	w.heading += (w.rng.Float64() - 0.5) * 0.4
	w.pos.X += 0.5 * w.rng.Float64()
	w.pos.Z += 0.5 * w.rng.Float64()

	onFloor := true
	vel := vec{X: 0.5, Z: 0.5}
	if w.airTime > 0 {
		w.airTime--
		onFloor = false
		vel.Y = 2
		w.pos.Y = 1 + float64(w.airTime)
	} else if w.rng.Intn(20) == 0 {
		w.airTime = 3
	}

	return map[string]interface{}{
		"type":     "updatePosition",
		"position": w.pos,
		"rotation": vec{Y: w.heading},
		"velocity": vel,
		"onFloor":  onFloor,
	}
}

func (w *walker) throw() map[string]interface{} {
	return map[string]interface{}{
		"type":     "throwBall",
		"position": vec{X: w.pos.X, Y: w.pos.Y + 1, Z: w.pos.Z},
		"velocity": vec{X: w.rng.Float64()*10 - 5, Y: 5, Z: w.rng.Float64()*10 - 5},
	}
}
