package equity

// preflopKey identifies a cached preflop equity by starting-hand class and
// opponent count.
type preflopKey struct {
	class     string
	opponents int
}

// preflopHeadsUp holds precomputed heads-up all-in equities for common
// starting hands against a random holding. Values outside this table are
// simulated on first use and memoized.
var preflopHeadsUp = map[string]float64{
	"AA": 0.852, "KK": 0.824, "QQ": 0.799, "JJ": 0.775, "TT": 0.750,
	"99": 0.720, "88": 0.691, "77": 0.662, "66": 0.633, "55": 0.604,
	"44": 0.575, "33": 0.546, "22": 0.518,
	"AKs": 0.670, "AQs": 0.660, "AJs": 0.650, "ATs": 0.640,
	"AKo": 0.653, "AQo": 0.643, "AJo": 0.633, "ATo": 0.623,
	"KQs": 0.634, "KJs": 0.624, "KTs": 0.615,
	"KQo": 0.615, "KJo": 0.605, "KTo": 0.595,
	"QJs": 0.603, "QTs": 0.593, "JTs": 0.582,
	"QJo": 0.583, "QTo": 0.573, "JTo": 0.562,
}

func seededPreflopCache() map[preflopKey]Result {
	cache := make(map[preflopKey]Result, len(preflopHeadsUp))
	for class, eq := range preflopHeadsUp {
		cache[preflopKey{class: class, opponents: 1}] = Result{
			Win:    eq,
			Lose:   1 - eq,
			Cached: true,
		}
	}
	return cache
}

// lookupPreflop returns a cached preflop result if one exists.
func (s *Simulator) lookupPreflop(key preflopKey) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.preflop[key]
	return r, ok
}

func (s *Simulator) storePreflop(key preflopKey, r Result) {
	r.Cached = true
	s.mu.Lock()
	s.preflop[key] = r
	s.mu.Unlock()
}
