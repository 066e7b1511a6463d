package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card identifies one of the 52 cards. The identity n decomposes as
// suit = n/13 and rank = n%13.
type Card uint8

// Suit constants, in protocol order.
const (
	Spades   uint8 = 0
	Hearts   uint8 = 1
	Clubs    uint8 = 2
	Diamonds uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

// NumCards is the size of the deck.
const NumCards = 52

const (
	rankChars = "23456789TJQKA"
	suitChars = "shcd"
)

// NewCard creates a card from rank and suit
func NewCard(rank, suit uint8) Card {
	return Card(suit*13 + rank)
}

// Rank returns the rank of the card (0-12)
func (c Card) Rank() uint8 {
	return uint8(c) % 13
}

// Suit returns the suit of the card (0-3)
func (c Card) Suit() uint8 {
	return uint8(c) / 13
}

// Mask returns the card's single bit inside a hand accumulator.
func (c Card) Mask() Hand {
	return Hand(1) << (16*uint(c.Suit()) + uint(c.Rank()))
}

// String returns the string representation (e.g., "As", "Kh")
func (c Card) String() string {
	if c >= NumCards {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// ParseCard parses a string like "As" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list such as "[Ah,Kd]", "Ah,Kd", "Ah Kd" or "AhKd".
func ParseCards(s string) ([]Card, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card list: %q", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards renders cards the way the match protocol does: "[Ah,Kd]".
func FormatCards(cards []Card) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range cards {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// Hand is a 64-bit accumulator made of four 16-bit suit fields. Within a field
// the low 13 bits mark the ranks present in that suit.
type Hand uint64

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= c.Mask()
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= c.Mask()
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return h&c.Mask() != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Suit returns the 13-bit rank-presence field of one suit.
func (h Hand) Suit(suit uint8) uint32 {
	return uint32(h>>(16*uint(suit))) & 0x1FFF
}

// Cards decodes the accumulator back into its cards, ordered by identity.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for suit := range uint8(4) {
		field := h.Suit(suit)
		for field != 0 {
			rank := uint8(bits.TrailingZeros32(field))
			cards = append(cards, NewCard(rank, suit))
			field &= field - 1
		}
	}
	return cards
}

// String renders the hand's cards in protocol form.
func (h Hand) String() string {
	return FormatCards(h.Cards())
}
