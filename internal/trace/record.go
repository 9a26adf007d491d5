// Package trace writes and reads decision traces: one JSON object per line,
// zstd-compressed. A trace holds every engine decision of a headless
// simulation plus one record per finished run.
package trace

import (
	"github.com/vovakirdan/idle-snake/internal/core"
	"github.com/vovakirdan/idle-snake/internal/games/idlesnake"
)

// Record kinds.
const (
	KindDecision = "decision"
	KindDeath    = "death"
)

// Record is a single trace line.
type Record struct {
	Kind     string `json:"kind"`
	Tick     uint64 `json:"tick"`
	Run      int    `json:"run"`
	Board    string `json:"board"`
	GridSize int    `json:"grid"`

	// decision records
	Stage       string `json:"stage,omitempty"`
	Direction   string `json:"dir,omitempty"`
	Head        [2]int `json:"head"`
	Target      [2]int `json:"target"`
	Length      int    `json:"len,omitempty"`
	Distance    int    `json:"dist"`
	Stagnation  int    `json:"stag,omitempty"`
	Fails       int    `json:"fails,omitempty"`
	Rejected    bool   `json:"rejected,omitempty"`
	RelaxArea   bool   `json:"relax_area,omitempty"`
	RelaxEscape bool   `json:"relax_escape,omitempty"`
	PathLen     int    `json:"path_len,omitempty"`
	Hold        int    `json:"hold,omitempty"`

	// death records
	Score  int            `json:"score,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Fruits int            `json:"fruits,omitempty"`
	Stages map[string]int `json:"stages,omitempty"`
}

func xy(p core.Position) [2]int { return [2]int{p.X, p.Y} }

// FromEvent converts a game event into a trace record. ok is false for
// events that carry neither a decision nor a finished run.
func FromEvent(ev idlesnake.Event) (rec Record, ok bool) {
	rec = Record{Tick: ev.Tick, Run: ev.Run, Board: ev.Board, GridSize: ev.GridSize}
	switch {
	case ev.Finished != nil:
		f := ev.Finished
		rec.Kind = KindDeath
		rec.Score = f.Score
		rec.Length = f.Length
		rec.Reason = f.DeathReason
		rec.Fruits = f.FruitsEaten
		rec.Stages = f.Stages
		return rec, true
	case ev.Decision != nil:
		d := ev.Decision
		rec.Kind = KindDecision
		rec.Stage = d.Stage.String()
		rec.Direction = d.Direction.String()
		rec.Head = xy(d.Head)
		rec.Target = xy(d.Target)
		rec.Length = d.BodyLength
		rec.Distance = d.Distance
		rec.Stagnation = d.Stagnation
		rec.Fails = d.Fails
		rec.Rejected = d.Rejected
		rec.RelaxArea = d.RelaxArea
		rec.RelaxEscape = d.RelaxEscape
		rec.PathLen = d.PathLen
		rec.Hold = d.Hold
		return rec, true
	}
	return Record{}, false
}
