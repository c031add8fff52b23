package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/ports"
	"github.com/deathdaycome/Lunaria1-sub000/internal/textproc"
)

// ReadSpreadRequest is the application-level input (no HTTP types).
type ReadSpreadRequest struct {
	Question   string
	NumCards   int
	DeckID     string
	SpreadType string
}

// ReadSpreadResponse is the application-level output.
type ReadSpreadResponse struct {
	SpreadType domain.SpreadType
	DeckID     string
	Cards      []domain.DrawnCard
	Sections   domain.Reading
	CardNames  []string
	Strategy   textproc.Strategy
	Model      string
	Attempts   int
	LatencyMS  int64
}

// ReadSpread draws a spread, has the generator interpret it and parses the
// answer into one section per card plus a summary. Answers that fail
// validation are regenerated; on the last attempt a marker-based answer
// that fails validation is re-parsed heuristically.
func (s *ReadingService) ReadSpread(ctx context.Context, req ReadSpreadRequest) (ReadSpreadResponse, error) {
	deckID := deckOrDefault(req.DeckID)
	deck, err := s.deckStore.GetDeck(ctx, deckID)
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("get deck: %w", err)
	}

	st := resolveSpreadType(req.SpreadType, req.NumCards)

	spread, err := domain.GenerateSpread(deck, req.NumCards, st, s.rng)
	if err != nil {
		return ReadSpreadResponse{}, fmt.Errorf("generate spread: %w", err)
	}

	in := ports.GenerateInput{
		Kind:     ports.PromptReading,
		Question: req.Question,
		Cards:    toCardInputs(spread.Cards),
	}

	start := time.Now()
	var (
		out    ports.GenerateOutput
		parsed parsedReading
		tries  int
	)
	for tries = 1; tries <= s.opts.MaxAttempts; tries++ {
		out, err = s.generator.Generate(ctx, in)
		if err != nil {
			return ReadSpreadResponse{}, fmt.Errorf("generate reading: %w", err)
		}

		parsed = parseReading(out.Text, req.NumCards, tries == s.opts.MaxAttempts)
		if parsed.validation.IsValid {
			break
		}
		s.logger.WarnContext(ctx, "reading failed validation",
			"attempt", tries,
			"strategy", parsed.strategy,
			"errors", parsed.validation.Errors,
		)
	}
	latency := time.Since(start).Milliseconds()

	if !parsed.validation.IsValid {
		return ReadSpreadResponse{}, fmt.Errorf("%w: %s",
			domain.ErrInvalidReading, strings.Join(parsed.validation.Errors, "; "))
	}
	if parsed.fellBack {
		s.logger.WarnContext(ctx, "marker parse failed, used heuristic sections", "attempts", tries)
	}

	return ReadSpreadResponse{
		SpreadType: st,
		DeckID:     deckID,
		Cards:      spread.Cards,
		Sections:   parsed.sections,
		CardNames:  s.matcher(deck).Extract(out.Text, req.NumCards),
		Strategy:   parsed.strategy,
		Model:      interpretationModel(out.Model, s.model),
		Attempts:   min(tries, s.opts.MaxAttempts),
		LatencyMS:  latency,
	}, nil
}

type parsedReading struct {
	sections   domain.Reading
	strategy   textproc.Strategy
	validation domain.ValidationResult
	fellBack   bool
}

// parseReading parses text for cardCount cards. With fallback set, a
// marker-based result that fails validation is replaced by the heuristic
// parse, which always has the right shape.
func parseReading(text string, cardCount int, fallback bool) parsedReading {
	sections, strategy := textproc.Parse(text, cardCount)
	p := parsedReading{
		sections:   sections,
		strategy:   strategy,
		validation: sections.Validate(cardCount),
	}
	if p.validation.IsValid || !fallback || strategy != textproc.StrategyMarkers {
		return p
	}

	sections = textproc.ParseHeuristic(text, cardCount)
	return parsedReading{
		sections:   sections,
		strategy:   textproc.StrategyHeuristic,
		validation: sections.Validate(cardCount),
		fellBack:   true,
	}
}

func resolveSpreadType(raw string, n int) domain.SpreadType {
	switch raw {
	case "three_card":
		return domain.SpreadThreeCard
	case "generic", "":
		if n == 3 {
			return domain.SpreadThreeCard
		}
		return domain.SpreadGeneric
	default:
		return domain.SpreadType(raw)
	}
}

func toCardInputs(cards []domain.DrawnCard) []ports.CardInput {
	out := make([]ports.CardInput, len(cards))
	for i, c := range cards {
		out[i] = ports.CardInput{
			Name:        c.Name,
			Position:    c.Position,
			Orientation: string(c.Orientation),
			Keywords:    c.Keywords,
			Short:       c.Short,
		}
	}
	return out
}
