package cardmatch_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathdaycome/Lunaria1-sub000/internal/cardmatch"
	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
)

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

type seededRNG struct{ r *rand.Rand }

func (s seededRNG) Intn(n int) int { return s.r.IntN(n) }

func majorArcana() domain.Deck {
	cards := []domain.Card{
		{Name: "Шут", Aliases: []string{"Дурак"}},
		{Name: "Маг"},
		{Name: "Верховная Жрица", Aliases: []string{"Жрица"}},
		{Name: "Императрица"},
		{Name: "Император"},
		{Name: "Иерофант", Aliases: []string{"Верховный Жрец"}},
		{Name: "Влюблённые", Aliases: []string{"Влюбленные"}},
		{Name: "Колесница"},
		{Name: "Сила"},
		{Name: "Отшельник"},
		{Name: "Колесо Фортуны"},
		{Name: "Справедливость", Aliases: []string{"Правосудие"}},
		{Name: "Повешенный"},
		{Name: "Смерть"},
		{Name: "Умеренность"},
		{Name: "Дьявол"},
		{Name: "Башня"},
		{Name: "Звезда"},
		{Name: "Луна"},
		{Name: "Солнце"},
		{Name: "Суд", Aliases: []string{"Страшный Суд"}},
		{Name: "Мир"},
	}
	return domain.Deck{ID: "major_arcana", Cards: cards}
}

func TestExtract_ExplicitMentions(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	got := m.Extract("Первая карта — Маг, вторая — Смерть, третья — Луна", 3)
	// Deck order, not the order of appearance in the text.
	assert.Equal(t, []string{"Маг", "Смерть", "Луна"}, got)
}

func TestExtract_DeckOrderNotTextOrder(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	got := m.Extract("Сначала Башня, потом Шут.", 2)
	assert.Equal(t, []string{"Шут", "Башня"}, got)
}

func TestExtract_Padding(t *testing.T) {
	deck := majorArcana()
	m := cardmatch.NewMatcher(deck, seededRNG{rand.New(rand.NewPCG(1, 2))})

	got := m.Extract("случайный текст без карт", 5)
	require.Len(t, got, 5)
	assert.ElementsMatch(t, got, uniq(got))
	for _, name := range got {
		assert.Contains(t, deck.MainNames(), name)
	}
}

func TestExtract_PaddingIsDeterministicWithFixedRNG(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{val: 0})

	// Always the first unused primary name.
	got := m.Extract("только Маг", 3)
	assert.Equal(t, []string{"Маг", "Шут", "Верховная Жрица"}, got)
}

func TestExtract_ContextPatterns(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	tests := []struct {
		name string
		text string
		want string
	}{
		{"word", "выпала луна над морем", "Луна"},
		{"card dash", "карта—Звезда", "Звезда"},
		{"name colon", "Отшельник: время побыть одному", "Отшельник"},
		{"leading dash", "ответ -Солнце", "Солнце"},
		{"parenthesized", "третья позиция (Колесница) говорит о движении", "Колесница"},
		{"case insensitive", "ДЬЯВОЛ искушает", "Дьявол"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, m.Extract(tt.text, 1))
		})
	}
}

func TestExtract_WordBoundaryIsUnicodeAware(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	// "Мир", "Маг" and "Суд" only occur inside longer words here.
	got := m.Extract("мирный вечер, магазин и Сударыня", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Шут", got[0], "padding expected, got a match")
}

func TestExtract_AliasesAreDistinctByDefault(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	got := m.Extract("Верховная Жрица хранит тайны", 2)
	assert.Equal(t, []string{"Верховная Жрица", "Жрица"}, got)
}

func TestExtract_AliasFolding(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{}, cardmatch.WithAliasFolding())

	got := m.Extract("Верховная Жрица хранит тайны, Дурак смеётся", 3)
	assert.Equal(t, []string{"Шут", "Верховная Жрица", "Маг"}, got)
}

func TestExtract_NormalizesComposedLetters(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), fixedRNG{})

	// "ё" written as "е" + combining diaeresis.
	got := m.Extract("Влюбле\u0308нные рядом", 1)
	assert.Equal(t, []string{"Влюблённые"}, got)
}

func TestExtract_CountInvariant(t *testing.T) {
	m := cardmatch.NewMatcher(majorArcana(), seededRNG{rand.New(rand.NewPCG(7, 7))})

	texts := []string{"", "Маг Маг Маг", "Шут, Маг, Сила, Мир, Луна, Солнце, Звезда"}
	for _, text := range texts {
		for _, n := range []int{0, 1, 3, 5, 10} {
			got := m.Extract(text, n)
			assert.Len(t, got, n, "text=%q n=%d", text, n)
			assert.Equal(t, uniq(got), got)
		}
	}
	assert.Empty(t, m.Extract("Маг", -1))
}

func TestExtract_SmallDeckCannotOverfill(t *testing.T) {
	deck := domain.Deck{Cards: []domain.Card{{Name: "Маг"}, {Name: "Луна"}}}
	m := cardmatch.NewMatcher(deck, fixedRNG{})

	assert.ElementsMatch(t, []string{"Маг", "Луна"}, m.Extract("", 5))
}

func uniq(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
