package app

import (
	"log/slog"
	"sync"

	"github.com/deathdaycome/Lunaria1-sub000/internal/cardmatch"
	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/ports"
)

// DefaultDeckID is used when a request names no deck.
const DefaultDeckID = "major_arcana"

// MaxCardCount bounds card counts accepted for text analysis.
const MaxCardCount = 22

// Options tune reading generation.
type Options struct {
	// MaxAttempts is how many times a reading is generated before giving
	// up on validation. Values below 1 mean 1.
	MaxAttempts int
	// AliasFolding reports alias mentions under the card's primary name.
	AliasFolding bool
}

// ReadingService orchestrates spread drawing, LLM generation and the
// parsing pipeline.
type ReadingService struct {
	deckStore ports.DeckStore
	generator ports.Generator
	rng       domain.RNG
	model     string
	opts      Options
	logger    *slog.Logger

	mu       sync.Mutex
	matchers map[string]*cardmatch.Matcher
}

func NewReadingService(ds ports.DeckStore, gen ports.Generator, rng domain.RNG, model string, opts Options, logger *slog.Logger) *ReadingService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &ReadingService{
		deckStore: ds,
		generator: gen,
		rng:       rng,
		model:     model,
		opts:      opts,
		logger:    logger,
		matchers:  make(map[string]*cardmatch.Matcher),
	}
}

// matcher returns the cached matcher for deck, building it on first use.
// Decks are immutable once loaded, so one matcher per deck ID is enough.
func (s *ReadingService) matcher(deck domain.Deck) *cardmatch.Matcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.matchers[deck.ID]; ok {
		return m
	}
	var opts []cardmatch.Option
	if s.opts.AliasFolding {
		opts = append(opts, cardmatch.WithAliasFolding())
	}
	m := cardmatch.NewMatcher(deck, s.rng, opts...)
	s.matchers[deck.ID] = m
	return m
}

func deckOrDefault(id string) string {
	if id == "" {
		return DefaultDeckID
	}
	return id
}

func interpretationModel(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}
