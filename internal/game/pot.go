package game

import (
	"slices"

	"github.com/lox/headsup/poker"
)

// Pot tracks each seat's cumulative contribution to the current hand. Main
// and side pots are not stored; they are derived from the contributions when
// asked for.
type Pot struct {
	contrib []int
	total   int
}

// NewPot creates an empty pot for a table of the given size.
func NewPot(seats int) *Pot {
	return &Pot{contrib: make([]int, seats)}
}

// Record adds chips put in by a seat.
func (p *Pot) Record(seat, chips int) {
	p.contrib[seat] += chips
	p.total += chips
}

// Total returns every chip put in this hand.
func (p *Pot) Total() int {
	return p.total
}

// Contribution returns what a seat has put in this hand.
func (p *Pot) Contribution(seat int) int {
	return p.contrib[seat]
}

// MaxPotToWin returns the most a seat can win if it puts in chips more: from
// every seat it can claim at most its own final contribution.
func (p *Pot) MaxPotToWin(seat, chips int) int {
	limit := p.contrib[seat] + chips
	sum := 0
	for _, c := range p.contrib {
		sum += min(c, limit)
	}
	return sum
}

// Layer is the main pot or one side pot.
type Layer struct {
	Amount int
	// Cap is the contribution level that closes the layer.
	Cap int
	// Eligible lists the contenders whose contribution reaches Cap.
	Eligible []int
}

// Layers splits the pot at every distinct contribution level of the
// contenders, main pot first. Folded chips fund the layers they reach; chips
// above the highest contender level go to the top layer.
func (p *Pot) Layers(contenders []int) []Layer {
	var levels []int
	for _, seat := range contenders {
		if c := p.contrib[seat]; c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)

	layers := make([]Layer, 0, len(levels))
	lo := 0
	for _, hi := range levels {
		layer := Layer{Cap: hi}
		for _, c := range p.contrib {
			layer.Amount += max(0, min(c, hi)-lo)
		}
		for _, seat := range contenders {
			if p.contrib[seat] >= hi {
				layer.Eligible = append(layer.Eligible, seat)
			}
		}
		layers = append(layers, layer)
		lo = hi
	}

	if n := len(layers); n > 0 {
		for _, c := range p.contrib {
			layers[n-1].Amount += max(0, c-lo)
		}
	}
	return layers
}

// Award is the share of a layer paid to one seat.
type Award struct {
	Seat  int
	Chips int
}

// LayerResult is a layer and how it was paid out. Awards are ordered
// clockwise from the seat after the button.
type LayerResult struct {
	Layer
	Awards []Award
}

// Settlement is the outcome of paying out a pot.
type Settlement struct {
	// Layers holds the main pot first, then side pots.
	Layers []LayerResult
	// Won is the total paid to each seat.
	Won []int
}

// Settle pays every layer to the strongest of its eligible contenders. The
// strengths map holds one entry per contender; a lone contender takes the
// whole pot without comparison. Chips that do not split evenly go one at a
// time to winners clockwise from the seat after the button.
func (p *Pot) Settle(strengths map[int]poker.Strength, button int) Settlement {
	if len(strengths) == 0 {
		panic("game: settling a pot without contenders")
	}

	contenders := make([]int, 0, len(strengths))
	for seat := range strengths {
		contenders = append(contenders, seat)
	}
	slices.Sort(contenders)

	n := len(p.contrib)
	out := Settlement{Won: make([]int, n)}
	layers := p.Layers(contenders)
	if len(contenders) == 1 {
		seat := contenders[0]
		layer := Layer{Amount: p.total, Cap: p.contrib[seat], Eligible: contenders}
		layers = []Layer{layer}
	}

	for _, layer := range layers {
		var best poker.Strength
		var winners []int
		for _, seat := range layer.Eligible {
			switch s := strengths[seat]; {
			case winners == nil || s > best:
				best, winners = s, []int{seat}
			case s == best:
				winners = append(winners, seat)
			}
		}

		share := layer.Amount / len(winners)
		rest := layer.Amount - share*len(winners)
		result := LayerResult{Layer: layer}
		for i := range n {
			seat := (button + 1 + i) % n
			if !slices.Contains(winners, seat) {
				continue
			}
			chips := share
			if rest > 0 {
				chips++
				rest--
			}
			result.Awards = append(result.Awards, Award{Seat: seat, Chips: chips})
			out.Won[seat] += chips
		}
		out.Layers = append(out.Layers, result)
	}
	return out
}
