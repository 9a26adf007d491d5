package idlesnake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/idle-snake/internal/navigation"
	"github.com/vovakirdan/idle-snake/internal/registry"
)

func TestPresetsAreValid(t *testing.T) {
	for _, b := range Boards {
		if err := b.Validate(); err != nil {
			t.Errorf("preset %s: %v", b.ID, err)
		}
	}
}

func TestParseBoard(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"valid", "id: maze\ntitle: Maze\nlayout:\n  - \"1.F\"\n  - \"..1\"\n", false},
		{"title defaults to id", "id: bare\nlayout: []\n", false},
		{"missing id", "title: X\n", true},
		{"unknown cell", "id: bad\nlayout:\n  - \"..X\"\n", true},
		{"lonely portal", "id: bad\nlayout:\n  - \"1..\"\n", true},
		{"three endpoints", "id: bad\nlayout:\n  - \"1.1.1\"\n", true},
		{"not yaml", "id: [", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseBoard([]byte(tc.yaml))
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseBoard() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && b.Title == "" {
				t.Error("title should never be empty")
			}
		})
	}
}

func TestLoadBoards(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"zig.yaml":      "id: zig\nlayout:\n  - \"F.F\"\n",
		"nested/ab.yml": "id: ab\ntitle: AB\nlayout:\n  - \"1.1\"\n",
		"broken.yaml":   "id: broken\nlayout:\n  - \"Q\"\n",
		"notes.txt":     "not a board",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	boards, skipped, err := LoadBoards(dir)
	if err != nil {
		t.Fatalf("LoadBoards: %v", err)
	}
	if len(boards) != 2 || boards[0].ID != "ab" || boards[1].ID != "zig" {
		t.Errorf("boards = %v", boards)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, expected the broken file", skipped)
	}

	boards, skipped, err = LoadBoards(filepath.Join(dir, "missing"))
	if err != nil || len(boards) != 0 || len(skipped) != 0 {
		t.Errorf("missing dir = %v, %v, %v", boards, skipped, err)
	}
}

func TestRegisterBoard(t *testing.T) {
	b := Board{ID: "loaded_test", Title: "Loaded", Layout: []string{"....", "..R.", "1..1"}}
	if err := RegisterBoard(b); err != nil {
		t.Fatalf("RegisterBoard: %v", err)
	}
	if err := RegisterBoard(b); err == nil {
		t.Error("registering twice should fail")
	}
	if err := RegisterBoard(Board{ID: "classic"}); err == nil {
		t.Error("a preset ID should be rejected")
	}

	got, ok := BoardByID("loaded_test")
	if !ok || got.Title != "Loaded" {
		t.Fatalf("BoardByID = %v, %v", got, ok)
	}
	g, err := registry.Create("loaded_test")
	if err != nil {
		t.Fatalf("registry.Create: %v", err)
	}
	if g.Title() != "Loaded" {
		t.Errorf("Title() = %q", g.Title())
	}

	kinds := make(map[navigation.WallKind]int)
	for _, w := range got.Walls(4, nil) {
		kinds[w.Kind]++
	}
	if kinds[navigation.Repulsion] != 1 || kinds[navigation.Portal] != 1 {
		t.Errorf("walls = %v", kinds)
	}
}
