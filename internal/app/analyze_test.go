package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathdaycome/Lunaria1-sub000/internal/app"
	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/ports"
	"github.com/deathdaycome/Lunaria1-sub000/internal/textproc"
)

func TestAnalyze_ReportsValidation(t *testing.T) {
	svc := newService(&mockGenerator{}, app.Options{})

	resp, err := svc.Analyze(context.Background(), app.AnalyzeRequest{
		Text:      "### Луна ###\nкоротко",
		CardCount: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, textproc.StrategyMarkers, resp.Strategy)
	assert.False(t, resp.Validation.IsValid)
	assert.Len(t, resp.Validation.Errors, 2)
	assert.Equal(t, []string{"Луна"}, resp.CardNames)
}

func TestAnalyze_InvalidCount(t *testing.T) {
	svc := newService(&mockGenerator{}, app.Options{})

	for _, n := range []int{-1, app.MaxCardCount + 1} {
		_, err := svc.Analyze(context.Background(), app.AnalyzeRequest{Text: "x", CardCount: n})
		assert.ErrorIs(t, err, domain.ErrInvalidCount)
	}
}

func TestExtractCards_PadsFromDeck(t *testing.T) {
	svc := newService(&mockGenerator{}, app.Options{AliasFolding: true})

	names, err := svc.ExtractCards(context.Background(), "", "Жрица и Дурак", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Шут", "Верховная Жрица", "Маг"}, names)
}

func TestHoroscope_Sanitized(t *testing.T) {
	gen := &mockGenerator{texts: []string{"## Гороскоп\n\n**Овен**, сегодня   удачный день!!!"}, model: "m1"}
	svc := newService(gen, app.Options{})

	resp, err := svc.Horoscope(context.Background(), app.HoroscopeRequest{Sign: "aries"})
	require.NoError(t, err)
	assert.Equal(t, "Гороскоп\n\nОвен, сегодня удачный день!", resp.Text)
	assert.Equal(t, "Овен", resp.Sign)
	assert.Equal(t, "day", resp.Period)
	assert.Equal(t, "m1", resp.Model)

	assert.Equal(t, ports.PromptHoroscope, gen.last.Kind)
	assert.Equal(t, "Овен", gen.last.Sign)
}

func TestHoroscope_Errors(t *testing.T) {
	svc := newService(&mockGenerator{texts: []string{"```\nкод\n```"}}, app.Options{})

	_, err := svc.Horoscope(context.Background(), app.HoroscopeRequest{Sign: "dragon"})
	assert.ErrorIs(t, err, domain.ErrInvalidSign)

	_, err = svc.Horoscope(context.Background(), app.HoroscopeRequest{Sign: "leo", Period: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.Horoscope(context.Background(), app.HoroscopeRequest{Sign: "leo"})
	assert.ErrorIs(t, err, domain.ErrUpstreamLLM)
}
