package poker

import (
	rand "math/rand/v2"
)

// Deck is a shuffled draw sequence with a save point for speculative
// sampling. Cards are dealt from the end of the remaining order.
type Deck struct {
	cards []Card
	saved []Card
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, NumCards),
		saved: make([]Card, 0, NumCards),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewDeckWithout creates a shuffled deck holding every card not in used.
func NewDeckWithout(rng *rand.Rand, used Hand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, NumCards),
		saved: make([]Card, 0, NumCards),
		rng:   rng,
	}
	for c := range Card(NumCards) {
		if !used.HasCard(c) {
			d.cards = append(d.cards, c)
		}
	}
	d.Shuffle()
	return d
}

// Reset refills the deck with all 52 cards and reshuffles it.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for c := range Card(NumCards) {
		d.cards = append(d.cards, c)
	}
	d.Shuffle()
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealOne deals a single card from the deck. It reports false when the deck
// is empty.
func (d *Deck) DealOne() (Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return 0, false
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

// Deal deals n cards from the deck, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	for i := range out {
		out[i], _ = d.DealOne()
	}
	return out
}

// Save records the current remaining order as the restore point.
func (d *Deck) Save() {
	d.saved = append(d.saved[:0], d.cards...)
}

// Restore returns the deck to the cards held at the last Save and reshuffles
// them, so consecutive samples draw independent completions.
func (d *Deck) Restore() {
	d.cards = append(d.cards[:0], d.saved...)
	d.Shuffle()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
