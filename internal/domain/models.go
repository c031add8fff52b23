package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// Card represents a single tarot card in a deck. Name is the primary
// spelling; Aliases lists alternate spellings that refer to the same card.
type Card struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Short    string   `json:"short" yaml:"short"`
}

// DrawnCard is a card that has been drawn as part of a spread.
type DrawnCard struct {
	Card
	Position    int         `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// Deck is an ordered collection of tarot cards. Order is significant:
// card-name extraction reports matches in deck order.
type Deck struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// Names returns every spelling known to the deck: each card's primary
// name followed by its aliases, in deck order.
func (d Deck) Names() []string {
	out := make([]string, 0, len(d.Cards))
	for _, c := range d.Cards {
		out = append(out, c.Name)
		out = append(out, c.Aliases...)
	}
	return out
}

// MainNames returns the primary card names in deck order.
func (d Deck) MainNames() []string {
	out := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		out[i] = c.Name
	}
	return out
}

// SpreadType identifies the type of spread.
type SpreadType string

const (
	SpreadGeneric   SpreadType = "generic"
	SpreadThreeCard SpreadType = "three_card"
)

// Spread is the result of drawing cards from a deck.
type Spread struct {
	Type  SpreadType
	Cards []DrawnCard
}
