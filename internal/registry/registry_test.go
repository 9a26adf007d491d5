package registry

import (
	"testing"

	"github.com/vovakirdan/idle-snake/internal/core"
)

type stubGame struct {
	id    string
	title string
	state core.GameState
}

func (s *stubGame) ID() string               { return s.id }
func (s *stubGame) Title() string            { return s.title }
func (s *stubGame) Reset(core.RuntimeConfig) { s.state = core.GameState{} }
func (s *stubGame) Render(*core.Screen)      {}
func (s *stubGame) State() core.GameState    { return s.state }
func (s *stubGame) Step(core.InputFrame) core.StepResult {
	s.state.Score++
	return core.StepResult{State: s.state}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub", title: "Stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered board should exist")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Stub" {
		t.Errorf("Title() = %q", g.Title())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the stub board")
	}

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("IDs() not sorted: %v", ids)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-board"); err == nil {
		t.Error("expected error for unknown board")
	}
	if Exists("no-such-board") {
		t.Error("unknown board should not exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}
