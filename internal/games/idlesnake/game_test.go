package idlesnake

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/idle-snake/internal/config"
	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/navigation"
	"github.com/vovakirdan/idle-snake/internal/registry"
)

func newTestGame(t *testing.T, boardID string, cfg config.Config, seed int64) *Game {
	t.Helper()
	b, ok := BoardByID(boardID)
	if !ok {
		t.Fatalf("unknown board %q", boardID)
	}
	g := NewWithConfig(b, cfg, nil)
	g.SetLockstep(true)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: seed})
	return g
}

func TestBoardsRegistered(t *testing.T) {
	for _, b := range Boards {
		if !registry.Exists(b.ID) {
			t.Errorf("board %q not registered", b.ID)
		}
	}
	g, err := registry.Create("portals")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Portals" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestSpawn(t *testing.T) {
	g := newTestGame(t, "classic", config.Default(), 1)

	if g.GridSize() != 5 {
		t.Errorf("grid = %d, expected 5", g.GridSize())
	}
	expected := []core.Position{core.Pos(2, 2), core.Pos(1, 2), core.Pos(0, 2)}
	if !reflect.DeepEqual(g.snake, expected) {
		t.Errorf("snake = %v, expected %v", g.snake, expected)
	}
	if g.heading != core.Right {
		t.Errorf("heading = %v, expected right", g.heading)
	}
	if len(g.fruits) != 1 {
		t.Fatalf("fruits = %d, expected 1", len(g.fruits))
	}
	for _, p := range g.snake {
		if g.fruits[0].Position == p {
			t.Error("fruit spawned on the snake")
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, b := range Boards {
		t.Run(b.ID, func(t *testing.T) {
			g1 := newTestGame(t, b.ID, config.Default(), 12345)
			g2 := newTestGame(t, b.ID, config.Default(), 12345)

			input := core.NewInputFrame()
			for i := 0; i < 600; i++ {
				g1.Step(input)
				g2.Step(input)
			}

			if s1, s2 := g1.Snapshot(), g2.Snapshot(); !reflect.DeepEqual(s1, s2) {
				t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
			}
		})
	}
}

func TestChooseTarget(t *testing.T) {
	g := newTestGame(t, "classic", config.Default(), 1)
	g.snake = []core.Position{core.Pos(2, 2), core.Pos(1, 2), core.Pos(0, 2)}

	tests := []struct {
		name     string
		fruits   []Fruit
		expected core.Position
	}{
		{"no fruit targets the head", nil, core.Pos(2, 2)},
		{"nearest", []Fruit{{Position: core.Pos(0, 0)}, {Position: core.Pos(3, 2)}}, core.Pos(3, 2)},
		{"first of equals", []Fruit{{Position: core.Pos(4, 2)}, {Position: core.Pos(2, 4)}}, core.Pos(4, 2)},
		{"golden wins", []Fruit{{Position: core.Pos(3, 2)}, {Position: core.Pos(4, 4), Golden: true}}, core.Pos(4, 4)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g.fruits = tc.fruits
			if got := g.chooseTarget().Position; got != tc.expected {
				t.Errorf("target = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestNeverMovesIntoNeck(t *testing.T) {
	for _, b := range Boards {
		t.Run(b.ID, func(t *testing.T) {
			g := newTestGame(t, b.ID, config.Default(), 99)
			input := core.NewInputFrame()

			for i := 0; i < 2000; i++ {
				run := g.Run()
				prev := append([]core.Position(nil), g.snake...)
				alive := !g.dead

				res := g.Step(input)
				if !alive || res.Finished != nil || g.Run() != run {
					continue
				}
				if g.snake[0] == prev[1] {
					t.Fatalf("step %d: head moved back onto the neck %v", i, prev[1])
				}
			}
		})
	}
}

func TestEatingGrowsAndExpands(t *testing.T) {
	cfg := config.Default()
	cfg.Board.ExpandEvery = 1
	g := newTestGame(t, "classic", cfg, 3)

	g.fruits = []Fruit{{Position: core.Pos(3, 2)}}
	res := g.Step(core.NewInputFrame())

	if res.State.Length != 4 || res.State.Score != cfg.Fruit.Value {
		t.Errorf("after eating: length %d score %d", res.State.Length, res.State.Score)
	}
	if g.GridSize() != 6 {
		t.Errorf("grid = %d, expected 6 after expansion", g.GridSize())
	}
	if len(g.engine.CachedPath()) != 0 || g.LastDecision().Stage != navigation.StageNone {
		t.Error("expansion should reset the engine")
	}
	if len(g.fruits) != cfg.Fruit.Count {
		t.Errorf("fruit not replenished: %d", len(g.fruits))
	}
}

func TestExpansionStopsAtMaxSize(t *testing.T) {
	cfg := config.Default()
	cfg.Board.ExpandEvery = 1
	cfg.Board.MaxSize = 5
	g := newTestGame(t, "classic", cfg, 3)

	g.fruits = []Fruit{{Position: core.Pos(3, 2)}}
	g.Step(core.NewInputFrame())
	if g.GridSize() != 5 {
		t.Errorf("grid = %d, should stay at max 5", g.GridSize())
	}
}

func TestGoldenFruitValue(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, "classic", cfg, 3)

	g.fruits = []Fruit{{Position: core.Pos(3, 2), Golden: true}}
	res := g.Step(core.NewInputFrame())
	if res.State.Score != cfg.Fruit.GoldenValue {
		t.Errorf("score = %d, expected %d", res.State.Score, cfg.Fruit.GoldenValue)
	}
	if g.BestScore() != cfg.Fruit.GoldenValue {
		t.Errorf("best = %d", g.BestScore())
	}
}

func TestDeathAndRespawn(t *testing.T) {
	cfg := config.Default()
	cfg.Board.RespawnTicks = 2
	g := newTestGame(t, "classic", cfg, 5)

	var events []Event
	g.SetObserver(func(e Event) { events = append(events, e) })

	// Boxed into the top-right corner: every move is fatal.
	g.snake = []core.Position{core.Pos(4, 0), core.Pos(3, 0), core.Pos(2, 0)}
	g.walls = []navigation.Wall{{Kind: navigation.Fusion, Positions: []core.Position{core.Pos(4, 1)}}}
	g.fruits = nil

	res := g.Step(core.NewInputFrame())
	if res.Finished == nil {
		t.Fatal("expected the run to end")
	}
	if res.Finished.DeathReason != DeathEdge || res.Finished.Board != "classic" || res.Finished.Length != 3 {
		t.Errorf("summary = %+v", res.Finished)
	}
	if res.Finished.Stages[navigation.StageLastResort.String()] != 1 {
		t.Errorf("stage histogram = %v", res.Finished.Stages)
	}
	if !res.State.GameOver || res.State.Deaths != 1 {
		t.Errorf("state after death = %+v", res.State)
	}

	var sawDecision, sawFinish bool
	for _, e := range events {
		if e.Decision != nil {
			sawDecision = true
		}
		if e.Finished != nil {
			sawFinish = true
		}
	}
	if !sawDecision || !sawFinish {
		t.Errorf("observer events: decision=%v finished=%v", sawDecision, sawFinish)
	}

	input := core.NewInputFrame()
	g.Step(input)
	g.Step(input)
	if !g.State().GameOver {
		t.Fatal("should still be waiting to respawn")
	}
	g.Step(input)
	if g.State().GameOver || g.Run() != 2 {
		t.Errorf("expected run 2 to start, run=%d state=%+v", g.Run(), g.State())
	}
	if g.GridSize() != cfg.Board.InitialSize || g.State().Length != cfg.Board.InitialLength {
		t.Error("new run should start on a fresh board")
	}
}

func TestPortalTeleports(t *testing.T) {
	g := newTestGame(t, "portals", config.Default(), 1)

	if len(g.portalExit) != 2 {
		t.Fatalf("expected one portal pair on a 5x5 board, got %v", g.portalExit)
	}
	g.snake = []core.Position{core.Pos(3, 4), core.Pos(2, 4), core.Pos(1, 4)}
	g.fruits = []Fruit{{Position: core.Pos(4, 4)}}
	g.engine.Reset()

	g.Step(core.NewInputFrame())
	if g.snake[0] != core.Pos(0, 0) {
		t.Errorf("head = %v, expected teleport to (0, 0)", g.snake[0])
	}
	if g.snake[1] != core.Pos(3, 4) {
		t.Errorf("neck = %v, expected the pre-teleport head", g.snake[1])
	}
}

func TestBoostOnContact(t *testing.T) {
	cfg := config.Default()
	g := newTestGame(t, "gauntlet", cfg, 1)

	g.snake = []core.Position{core.Pos(2, 3), core.Pos(2, 2), core.Pos(2, 1)}
	g.fruits = []Fruit{{Position: core.Pos(1, 3)}}
	g.engine.Reset()

	g.Step(core.NewInputFrame())
	if g.snake[0] != core.Pos(1, 3) {
		t.Fatalf("head = %v, expected (1, 3)", g.snake[0])
	}
	if g.boostLeft != cfg.Speed.BoostMoves {
		t.Errorf("boostLeft = %d, expected %d", g.boostLeft, cfg.Speed.BoostMoves)
	}
}

func TestFruitAvoidsRepulsion(t *testing.T) {
	g := newTestGame(t, "gauntlet", config.Default(), 1)

	// Gauntlet has a repulsion wall at (3, 0) on the initial board.
	for _, p := range g.spawnCells() {
		if core.Manhattan(p, core.Pos(3, 0)) <= 1 {
			t.Errorf("spawn cell %v is inside the repulsion radius", p)
		}
	}
}

func TestPacing(t *testing.T) {
	cfg := config.Default()
	cfg.Speed.Progression.Type = "none"
	cfg.Speed.InitialMs = 500

	b, _ := BoardByID("classic")
	g := NewWithConfig(b, cfg, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 1})

	decisions := 0
	g.SetObserver(func(e Event) {
		if e.Decision != nil {
			decisions++
		}
	})

	input := core.NewInputFrame()
	for i := 0; i < 4; i++ {
		g.Step(input)
	}
	if decisions != 0 {
		t.Fatalf("moved after 400ms with a 500ms interval")
	}
	g.Step(input)
	if decisions != 1 {
		t.Fatalf("decisions = %d after 500ms, expected 1", decisions)
	}

	input.Set(core.ActionFaster)
	g.Step(input)
	input.Clear()
	if g.Speed() != 2 {
		t.Errorf("speed = %v, expected 2", g.Speed())
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newTestGame(t, "classic", config.Default(), 1)
	head := g.snake[0]

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	res := g.Step(input)
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	input.Clear()
	g.Step(input)
	if g.snake[0] != head {
		t.Error("snake moved while paused")
	}

	input.Set(core.ActionRestart)
	g.Step(input)
	if g.Run() != 2 || g.State().Deaths != 0 {
		t.Errorf("restart: run=%d deaths=%d", g.Run(), g.State().Deaths)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "pillars", config.Default(), 1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Pillars") {
		t.Error("HUD should show the board title")
	}
	if !strings.ContainsRune(out, 'O') {
		t.Error("snake head not drawn")
	}

	small := core.NewScreen(30, 6)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Errorf("expected a too-small notice, got %q", small.String())
	}
}
