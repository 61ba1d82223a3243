package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"

	"github.com/lox/holdem-advisor/poker"
)

const (
	rankingsFile = "rankings.json"
	pushFoldFile = "pushfold.json"
	openingFile  = "opening.json"
	threeBetFile = "threebet.json"
)

// loadFS builds a chart set from JSON files under root. A file missing from
// fsys falls back to the embedded default of the same name.
func loadFS(fsys fs.FS, root string) (*chartSet, error) {
	set := &chartSet{}

	if err := readChart(fsys, root, rankingsFile, set.loadRankings); err != nil {
		return nil, err
	}
	if err := readChart(fsys, root, pushFoldFile, set.loadPushFold); err != nil {
		return nil, err
	}
	if err := readChart(fsys, root, openingFile, set.loadOpening); err != nil {
		return nil, err
	}
	if err := readChart(fsys, root, threeBetFile, set.loadThreeBet); err != nil {
		return nil, err
	}
	return set, nil
}

func readChart(fsys fs.FS, root, name string, load func([]byte) error) error {
	raw, err := fs.ReadFile(fsys, path.Join(root, name))
	if errors.Is(err, fs.ErrNotExist) {
		raw, err = fs.ReadFile(defaultData, path.Join("data", name))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := load(raw); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (set *chartSet) loadRankings(raw []byte) error {
	var rankings map[string]float64
	if err := json.Unmarshal(raw, &rankings); err != nil {
		return fmt.Errorf("%w: %v", ErrBadChart, err)
	}
	for notation, strength := range rankings {
		if _, err := poker.ParseClass(notation); err != nil {
			return fmt.Errorf("%w: ranking key %q: %v", ErrBadChart, notation, err)
		}
		if strength < 0 || strength > 1 {
			return fmt.Errorf("%w: ranking %q strength %v outside [0,1]", ErrBadChart, notation, strength)
		}
	}
	set.rankings = rankings
	return nil
}

func (set *chartSet) loadPushFold(raw []byte) error {
	var doc struct {
		Push map[string]map[Position]float64 `json:"push"`
		Call map[string]map[Position]float64 `json:"call"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadChart, err)
	}

	push, buckets, err := bucketTable(doc.Push)
	if err != nil {
		return err
	}
	call, callBuckets, err := bucketTable(doc.Call)
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		return fmt.Errorf("%w: no push buckets", ErrBadChart)
	}
	// Push and call must bucket identically or the round-up rule would
	// resolve them differently for the same stack.
	if len(callBuckets) != len(buckets) {
		return fmt.Errorf("%w: push and call bucket sets differ", ErrBadChart)
	}
	for i := range buckets {
		if buckets[i] != callBuckets[i] {
			return fmt.Errorf("%w: push and call bucket sets differ", ErrBadChart)
		}
	}

	set.push = push
	set.call = call
	set.buckets = buckets
	return nil
}

func bucketTable(doc map[string]map[Position]float64) (map[int]map[Position]float64, []int, error) {
	table := make(map[int]map[Position]float64, len(doc))
	buckets := make([]int, 0, len(doc))
	for key, thresholds := range doc {
		bucket, err := strconv.Atoi(key)
		if err != nil || bucket <= 0 {
			return nil, nil, fmt.Errorf("%w: stack bucket %q", ErrBadChart, key)
		}
		for pos := range thresholds {
			if !pos.Valid() {
				return nil, nil, fmt.Errorf("%w: unknown position %q in bucket %d", ErrBadChart, pos, bucket)
			}
		}
		table[bucket] = thresholds
		buckets = append(buckets, bucket)
	}
	sort.Ints(buckets)
	return table, buckets, nil
}

func (set *chartSet) loadOpening(raw []byte) error {
	var doc map[string]map[Position]struct {
		RaiseSize   float64 `json:"raise_size"`
		Description string  `json:"description"`
		Raise       string  `json:"raise"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadChart, err)
	}

	opening := make(map[string]map[Position]OpeningChart, len(doc))
	for format, byPos := range doc {
		charts := make(map[Position]OpeningChart, len(byPos))
		for pos, entry := range byPos {
			if !pos.Valid() {
				return fmt.Errorf("%w: unknown position %q in %s opening chart", ErrBadChart, pos, format)
			}
			classes, err := poker.ParseClasses(entry.Raise)
			if err != nil {
				return fmt.Errorf("%w: %s/%s opening range: %v", ErrBadChart, format, pos, err)
			}
			charts[pos] = OpeningChart{
				RaiseSize:   entry.RaiseSize,
				Description: entry.Description,
				Raise:       classes,
			}
		}
		opening[format] = charts
	}
	set.opening = opening
	return nil
}

func (set *chartSet) loadThreeBet(raw []byte) error {
	var doc map[string]map[Position]struct {
		Description string `json:"description"`
		Value       string `json:"value"`
		Bluff       string `json:"bluff"`
		Call        string `json:"call"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadChart, err)
	}

	threeBet := make(map[string]map[Position]ThreeBetChart, len(doc))
	for format, byPos := range doc {
		charts := make(map[Position]ThreeBetChart, len(byPos))
		for pos, entry := range byPos {
			if !pos.Valid() {
				return fmt.Errorf("%w: unknown position %q in %s 3-bet chart", ErrBadChart, pos, format)
			}
			value, err := poker.ParseClasses(entry.Value)
			if err != nil {
				return fmt.Errorf("%w: %s/%s value range: %v", ErrBadChart, format, pos, err)
			}
			bluff, err := poker.ParseClasses(entry.Bluff)
			if err != nil {
				return fmt.Errorf("%w: %s/%s bluff range: %v", ErrBadChart, format, pos, err)
			}
			call, err := poker.ParseClasses(entry.Call)
			if err != nil {
				return fmt.Errorf("%w: %s/%s call range: %v", ErrBadChart, format, pos, err)
			}
			charts[pos] = ThreeBetChart{
				Description: entry.Description,
				Value:       value,
				Bluff:       bluff,
				Call:        call,
			}
		}
		threeBet[format] = charts
	}
	set.threeBet = threeBet
	return nil
}
