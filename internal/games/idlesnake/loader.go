package idlesnake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/idle-snake/internal/registry"
)

var boardsMu sync.RWMutex

// boardFile is the YAML form of a custom board:
//
//	id: maze
//	title: Maze
//	layout:
//	  - "....F...."
//	  - "1...F...1"
type boardFile struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Layout []string `yaml:"layout"`
}

// ParseBoard decodes and validates a YAML board.
func ParseBoard(data []byte) (Board, error) {
	var bf boardFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	b := Board{ID: bf.ID, Title: bf.Title, Layout: bf.Layout}
	if b.Title == "" {
		b.Title = b.ID
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks the ID and the layout legend. Every portal digit must
// appear exactly twice.
func (b Board) Validate() error {
	if b.ID == "" || strings.ContainsAny(b.ID, " \t/") {
		return fmt.Errorf("invalid board id %q", b.ID)
	}
	portals := make(map[rune]int)
	for y, row := range b.Layout {
		for x, ch := range row {
			switch {
			case ch == '.' || ch == 'F' || ch == 'R' || ch == 'B':
			case ch >= '1' && ch <= '9':
				portals[ch]++
			default:
				return fmt.Errorf("board %s: unknown cell %q at (%d, %d)", b.ID, ch, x, y)
			}
		}
	}
	for id, n := range portals {
		if n != 2 {
			return fmt.Errorf("board %s: portal %c has %d endpoints, expected 2", b.ID, id, n)
		}
	}
	return nil
}

// LoadBoards reads every .yaml/.yml board below dir, sorted by ID. Files
// that fail to parse are skipped and reported in skipped. A missing dir
// yields no boards and no error.
func LoadBoards(dir string) (boards []Board, skipped []error, err error) {
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir && errors.Is(walkErr, os.ErrNotExist) {
				return filepath.SkipDir
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", path, readErr))
			return nil
		}
		b, parseErr := ParseBoard(data)
		if parseErr != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", path, parseErr))
			return nil
		}
		boards = append(boards, b)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("idlesnake: walking %s: %w", dir, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
	return boards, skipped, nil
}

// RegisterBoard adds a custom board to the presets and the registry.
func RegisterBoard(b Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if registry.Exists(b.ID) {
		return fmt.Errorf("idlesnake: board %q already registered", b.ID)
	}

	boardsMu.Lock()
	Boards = append(Boards, b)
	boardsMu.Unlock()

	registry.Register(b.ID, func() registry.Game {
		return New(b)
	})
	return nil
}
