package tetris

import "math/rand"

// copiesPerBag is how many times each kind appears in one bag.
const copiesPerBag = 4

// BagSize is the number of pieces dealt before the bag is refilled.
const BagSize = len(Kinds) * copiesPerBag

// Bag deals pieces from a shuffled multiset of every kind.
// A refill holds each kind four times, so every run of 28 deals
// contains each kind exactly four times.
type Bag struct {
	rng   *rand.Rand
	items []Kind
}

// NewBag creates an empty bag; the first draw fills it.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng, items: make([]Kind, 0, BagSize)}
}

func (b *Bag) refill() {
	b.items = b.items[:0]
	for range copiesPerBag {
		b.items = append(b.items, Kinds[:]...)
	}
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}

// Next removes and returns the piece at the end of the bag.
func (b *Bag) Next() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	k := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return k
}

// Peek returns the piece Next would deal without consuming it.
func (b *Bag) Peek() Kind {
	if len(b.items) == 0 {
		b.refill()
	}
	return b.items[len(b.items)-1]
}

// Len returns the number of pieces left before a refill.
func (b *Bag) Len() int {
	return len(b.items)
}
