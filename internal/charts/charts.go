// Package charts holds the static range chart data the decision engine
// consults: hand strength rankings, push/fold thresholds, opening ranges
// and 3-bet ranges. Defaults are embedded; a chart directory can replace
// them at runtime.
package charts

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/lox/holdem-advisor/poker"
)

//go:embed data/*.json
var defaultData embed.FS

// ErrBadChart reports chart data that fails to parse or validate.
var ErrBadChart = errors.New("bad chart data")

// Position is a seat relative to the button.
type Position string

const (
	UTG Position = "UTG"
	MP  Position = "MP"
	CO  Position = "CO"
	BTN Position = "BTN"
	SB  Position = "SB"
	BB  Position = "BB"
)

// Positions lists seats from earliest to latest preflop action. The big
// blind acts last preflop.
var Positions = []Position{UTG, MP, CO, BTN, SB, BB}

// Valid reports whether the position is one of the six known seats.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// OpeningChart is the open-raise range for one position.
type OpeningChart struct {
	RaiseSize   float64
	Description string
	Raise       []poker.Class
}

// ThreeBetChart holds the responses to an open raise from a given position.
type ThreeBetChart struct {
	Description string
	Value       []poker.Class
	Bluff       []poker.Class
	Call        []poker.Class
}

// chartSet is one immutable, fully validated set of charts. Lookups read a
// snapshot pointer so a concurrent reload can never expose partial data.
type chartSet struct {
	rankings map[string]float64
	buckets  []int
	push     map[int]map[Position]float64
	call     map[int]map[Position]float64
	opening  map[string]map[Position]OpeningChart
	threeBet map[string]map[Position]ThreeBetChart
}

// Store provides concurrent read access to the chart set. Reads take the
// read lock; LoadDir swaps the whole set under the write lock.
type Store struct {
	mu  sync.RWMutex
	set *chartSet
}

// NewStore creates a store populated with the embedded default charts.
func NewStore() (*Store, error) {
	set, err := loadFS(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded charts: %w", err)
	}
	return &Store{set: set}, nil
}

// LoadDir replaces the chart set with JSON files from dir. Files absent
// from the directory keep their embedded defaults. The new set is parsed
// and validated in full before it becomes visible to readers.
func (s *Store) LoadDir(dir string) error {
	set, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return fmt.Errorf("charts dir %s: %w", dir, err)
	}
	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	return nil
}

func (s *Store) snapshot() *chartSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// HandStrength returns the 0-1 ranking for a starting-hand class. Classes
// missing from the table report ok=false; callers choose the default.
func (s *Store) HandStrength(class poker.Class) (float64, bool) {
	v, ok := s.snapshot().rankings[class.String()]
	return v, ok
}

// Buckets returns the configured stack buckets in ascending order.
func (s *Store) Buckets() []int {
	return append([]int(nil), s.snapshot().buckets...)
}

// Bucket maps a stack depth to a chart bucket: the smallest bucket at or
// above the stack, clamped to the largest bucket beyond it.
func (s *Store) Bucket(stackBB float64) int {
	buckets := s.snapshot().buckets
	for _, b := range buckets {
		if stackBB <= float64(b) {
			return b
		}
	}
	return buckets[len(buckets)-1]
}

// PushThreshold returns the minimum hand strength to shove for the given
// position and stack depth, plus the bucket that served the lookup.
func (s *Store) PushThreshold(pos Position, stackBB float64) (float64, int, bool) {
	set := s.snapshot()
	bucket := s.Bucket(stackBB)
	v, ok := set.push[bucket][pos]
	return v, bucket, ok
}

// CallThreshold returns the minimum hand strength to call a shove, bucketed
// by the shover's stack.
func (s *Store) CallThreshold(pos Position, shoveBB float64) (float64, int, bool) {
	set := s.snapshot()
	bucket := s.Bucket(shoveBB)
	v, ok := set.call[bucket][pos]
	return v, bucket, ok
}

// PushRange lists the classes pushed from a position and stack depth,
// strongest first.
func (s *Store) PushRange(pos Position, stackBB float64) []poker.Class {
	threshold, _, ok := s.PushThreshold(pos, stackBB)
	if !ok {
		return nil
	}
	set := s.snapshot()

	var classes []poker.Class
	for notation, strength := range set.rankings {
		if strength < threshold {
			continue
		}
		class, err := poker.ParseClass(notation)
		if err != nil {
			continue
		}
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		a, _ := set.rankings[classes[i].String()]
		b, _ := set.rankings[classes[j].String()]
		if a != b {
			return a > b
		}
		return classes[i].String() < classes[j].String()
	})
	return classes
}

// Opening returns the opening chart for a position, if the table format
// carries one.
func (s *Store) Opening(format string, pos Position) (OpeningChart, bool) {
	chart, ok := s.snapshot().opening[format][pos]
	return chart, ok
}

// ThreeBet returns the 3-bet response chart keyed by the raiser's position.
func (s *Store) ThreeBet(format string, raiser Position) (ThreeBetChart, bool) {
	chart, ok := s.snapshot().threeBet[format][raiser]
	return chart, ok
}

// Formats lists the table formats present in the opening charts, sorted.
func (s *Store) Formats() []string {
	set := s.snapshot()
	formats := make([]string, 0, len(set.opening))
	for f := range set.opening {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
