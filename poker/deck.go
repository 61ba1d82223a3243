package poker

import rand "math/rand/v2"

// Deck holds the cards still available for dealing. Dead cards (hero holes,
// board, assigned villain cards) are excluded at construction.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck minus the dead cards, shuffled with
// the supplied RNG.
func NewDeck(dead []Card, rng *rand.Rand) *Deck {
	isDead := make(map[Card]bool, len(dead))
	for _, c := range dead {
		isDead[c] = true
	}

	d := &Deck{cards: make([]Card, 0, 52-len(dead)), rng: rng}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			if !isDead[card] {
				d.cards = append(d.cards, card)
			}
		}
	}
	d.Shuffle()
	return d
}

// Shuffle reshuffles the remaining deck and rewinds the deal position.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards, or nil if the deck cannot supply them.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card. ok is false when the deck is exhausted.
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
