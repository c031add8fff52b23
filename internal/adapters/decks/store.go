package decks

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
)

//go:embed data/*.yaml
var deckFS embed.FS

// registry maps deck IDs to their YAML filenames inside data/.
var registry = map[string]string{
	"major_arcana": "data/major_arcana.yaml",
}

// Store serves decks from the embedded YAML files, optionally overridden
// by decks loaded from disk.
type Store struct {
	files []string

	once  sync.Once
	decks map[string]domain.Deck
	err   error
}

// NewEmbeddedStore returns a store of the built-in decks. Each extra file
// holds one deck; it replaces a built-in deck with the same ID.
func NewEmbeddedStore(files ...string) *Store {
	return &Store{files: files}
}

func (s *Store) init() {
	s.decks = make(map[string]domain.Deck, len(registry)+len(s.files))
	for id, filename := range registry {
		raw, err := deckFS.ReadFile(filename)
		if err != nil {
			s.err = fmt.Errorf("read embedded deck %s: %w", id, err)
			return
		}
		deck, err := ParseDeck(raw)
		if err != nil {
			s.err = fmt.Errorf("parse embedded deck %s: %w", id, err)
			return
		}
		s.decks[deck.ID] = deck
	}

	for _, path := range s.files {
		raw, err := os.ReadFile(path)
		if err != nil {
			s.err = fmt.Errorf("read deck file %s: %w", path, err)
			return
		}
		deck, err := ParseDeck(raw)
		if err != nil {
			s.err = fmt.Errorf("parse deck file %s: %w", path, err)
			return
		}
		s.decks[deck.ID] = deck
	}
}

func (s *Store) GetDeck(_ context.Context, deckID string) (domain.Deck, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Deck{}, s.err
	}
	deck, ok := s.decks[deckID]
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	return deck, nil
}

// ParseDeck decodes a YAML deck and checks that it has an ID and that no
// spelling, primary or alias, is used twice.
func ParseDeck(raw []byte) (domain.Deck, error) {
	var deck domain.Deck
	if err := yaml.Unmarshal(raw, &deck); err != nil {
		return domain.Deck{}, err
	}
	if deck.ID == "" {
		return domain.Deck{}, fmt.Errorf("deck id is empty")
	}
	if len(deck.Cards) == 0 {
		return domain.Deck{}, fmt.Errorf("deck %s has no cards", deck.ID)
	}
	if deck.Name == "" {
		deck.Name = deck.ID
	}

	seen := make(map[string]bool)
	for _, name := range deck.Names() {
		if name == "" {
			return domain.Deck{}, fmt.Errorf("deck %s has a card without a name", deck.ID)
		}
		if seen[name] {
			return domain.Deck{}, fmt.Errorf("deck %s: duplicate card name %q", deck.ID, name)
		}
		seen[name] = true
	}
	return deck, nil
}
