package poker

// CardSet is a 52-bit set of cards for fast dead-card checks during
// simulation. The zero value is the empty set.
type CardSet uint64

// NewCardSet builds a set from a slice of cards.
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set.
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.Index()
}

// Contains reports whether the card is in the set.
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.Index()) != 0
}
