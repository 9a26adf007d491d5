package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"
)

// Read decodes every record of a zstd JSONL stream and hands it to fn.
// Iteration stops at the first error fn returns.
func Read(r io.Reader, fn func(Record) error) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("trace: cannot start decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return fmt.Errorf("trace: line %d: unmarshal: %w", line, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("trace: read: %w", err)
	}
	return nil
}

// ReadFile is Read on the file at path.
func ReadFile(path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("trace: cannot open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Read(f, fn)
}

// Summary aggregates a trace.
type Summary struct {
	Decisions int
	Stages    map[string]int // decisions per cascade stage
	Rejected  int
	Runs      int            // finished runs
	Deaths    map[string]int // finished runs per death reason
	BestScore int
	BestLen   int
	MaxGrid   int
}

// StageNames returns the stage keys sorted by descending count.
func (s *Summary) StageNames() []string {
	names := make([]string, 0, len(s.Stages))
	for k := range s.Stages {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Stages[names[i]] != s.Stages[names[j]] {
			return s.Stages[names[i]] > s.Stages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Add folds one record into the summary.
func (s *Summary) Add(rec Record) {
	if s.Stages == nil {
		s.Stages = make(map[string]int)
	}
	if s.Deaths == nil {
		s.Deaths = make(map[string]int)
	}
	s.MaxGrid = max(s.MaxGrid, rec.GridSize)

	switch rec.Kind {
	case KindDecision:
		s.Decisions++
		s.Stages[rec.Stage]++
		if rec.Rejected {
			s.Rejected++
		}
	case KindDeath:
		s.Runs++
		s.Deaths[rec.Reason]++
		s.BestScore = max(s.BestScore, rec.Score)
		s.BestLen = max(s.BestLen, rec.Length)
	}
}

// Summarize reads the trace at path into a Summary.
func Summarize(path string) (*Summary, error) {
	s := &Summary{Stages: make(map[string]int), Deaths: make(map[string]int)}
	err := ReadFile(path, func(rec Record) error {
		s.Add(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
