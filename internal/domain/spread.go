package domain

// Spread size limits.
const (
	MinSpreadCards = 1
	MaxSpreadCards = 10
)

// GenerateSpread draws n unique cards from deck using the provided RNG.
// Positions are 1-based. Orientation is 50/50 upright/reversed.
// Only primary cards are drawn; aliases never appear as separate cards.
func GenerateSpread(deck Deck, n int, spreadType SpreadType, rng RNG) (Spread, error) {
	if n < MinSpreadCards || n > MaxSpreadCards {
		return Spread{}, ErrInvalidN
	}
	if n > len(deck.Cards) {
		return Spread{}, ErrNExceedsDeck
	}

	// Partial Fisher-Yates: the first n slots are settled after n swaps.
	indices := make([]int, len(deck.Cards))
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]DrawnCard, n)
	for i := range n {
		orientation := Upright
		if rng.Intn(2) == 1 {
			orientation = Reversed
		}
		cards[i] = DrawnCard{
			Card:        deck.Cards[indices[i]],
			Position:    i + 1,
			Orientation: orientation,
		}
	}

	return Spread{
		Type:  spreadType,
		Cards: cards,
	}, nil
}
