package app

import (
	"context"
	"fmt"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/textproc"
)

// AnalyzeRequest carries text produced elsewhere, e.g. a stored reading.
type AnalyzeRequest struct {
	Text      string
	CardCount int
	DeckID    string
}

type AnalyzeResponse struct {
	Sections   domain.Reading
	Strategy   textproc.Strategy
	Validation domain.ValidationResult
	CardNames  []string
}

// Analyze runs the parsing pipeline on caller-supplied text without
// calling the generator. Validation failures are reported, not returned
// as errors.
func (s *ReadingService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	if err := checkCardCount(req.CardCount); err != nil {
		return AnalyzeResponse{}, err
	}
	deck, err := s.deckStore.GetDeck(ctx, deckOrDefault(req.DeckID))
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("get deck: %w", err)
	}

	sections, strategy := textproc.Parse(req.Text, req.CardCount)
	return AnalyzeResponse{
		Sections:   sections,
		Strategy:   strategy,
		Validation: sections.Validate(req.CardCount),
		CardNames:  s.matcher(deck).Extract(req.Text, req.CardCount),
	}, nil
}

// ExtractCards returns exactly count distinct card names for text.
func (s *ReadingService) ExtractCards(ctx context.Context, deckID, text string, count int) ([]string, error) {
	if err := checkCardCount(count); err != nil {
		return nil, err
	}
	deck, err := s.deckStore.GetDeck(ctx, deckOrDefault(deckID))
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return s.matcher(deck).Extract(text, count), nil
}

func checkCardCount(n int) error {
	if n < 0 || n > MaxCardCount {
		return fmt.Errorf("%w: %d not in [0, %d]", domain.ErrInvalidCount, n, MaxCardCount)
	}
	return nil
}
