package app

import (
	"context"
	"fmt"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/ports"
	"github.com/deathdaycome/Lunaria1-sub000/internal/textproc"
)

type HoroscopeRequest struct {
	Sign   string
	Period string
}

type HoroscopeResponse struct {
	Sign   string
	Period string
	Text   string
	Model  string
}

var horoscopePeriods = map[string]bool{"day": true, "week": true, "month": true}

// Horoscope generates one block of horoscope text and returns it with
// markdown and typography cleaned up.
func (s *ReadingService) Horoscope(ctx context.Context, req HoroscopeRequest) (HoroscopeResponse, error) {
	sign, err := domain.ZodiacSign(req.Sign)
	if err != nil {
		return HoroscopeResponse{}, err
	}
	period := req.Period
	if period == "" {
		period = "day"
	}
	if !horoscopePeriods[period] {
		return HoroscopeResponse{}, domain.ErrInvalidPeriod
	}

	out, err := s.generator.Generate(ctx, ports.GenerateInput{
		Kind:   ports.PromptHoroscope,
		Sign:   sign,
		Period: period,
	})
	if err != nil {
		return HoroscopeResponse{}, fmt.Errorf("generate horoscope: %w", err)
	}

	text := textproc.SanitizeRussian(out.Text)
	if text == "" {
		return HoroscopeResponse{}, fmt.Errorf("%w: empty horoscope", domain.ErrUpstreamLLM)
	}

	return HoroscopeResponse{
		Sign:   sign,
		Period: period,
		Text:   text,
		Model:  interpretationModel(out.Model, s.model),
	}, nil
}
