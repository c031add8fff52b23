package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
)

func TestValidateReading_Valid(t *testing.T) {
	r := domain.Reading{
		{Title: "Маг", Content: "Сила воли и новые начинания."},
		{Title: "Итог", Content: "Действуйте решительно и спокойно."},
	}

	res := r.Validate(1)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.NotNil(t, res.Errors)
}

func TestValidateReading_ShortContent(t *testing.T) {
	res := domain.ValidateReading([]domain.Section{{Title: "X", Content: "short"}}, 0)

	require.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "section 1")
	assert.Contains(t, res.Errors[0], "content length 5")
}

func TestValidateReading_NotAnArray(t *testing.T) {
	for _, in := range []any{nil, "text", 42, map[string]any{"title": "x"}} {
		res := domain.ValidateReading(in, 3)
		assert.False(t, res.IsValid)
		assert.Len(t, res.Errors, 1, "input %v", in)
	}
}

func TestValidateReading_AccumulatesAllErrors(t *testing.T) {
	var reading any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"title": "A", "content": "достаточно длинный текст"},
		null,
		{"title": 5, "content": "достаточно длинный текст"},
		{"title": "B"},
		{"title": "  ", "content": "ok"}
	]`), &reading))

	res := domain.ValidateReading(reading, 1)
	require.False(t, res.IsValid)

	joined := strings.Join(res.Errors, "\n")
	assert.Contains(t, joined, "expected 2 sections (1 cards + summary), got 5")
	assert.Contains(t, joined, "section 2: must be an object")
	assert.Contains(t, joined, "section 3: title must be a string")
	assert.Contains(t, joined, "section 4: content must be a string")
	assert.Contains(t, joined, "section 5: title must not be empty")
	assert.Contains(t, joined, "section 5: content length 2")
	assert.Len(t, res.Errors, 6)
}

func TestValidateReading_CountsRunesNotBytes(t *testing.T) {
	// Ten Cyrillic letters are twenty bytes but exactly the minimum length.
	res := domain.ValidateReading([]domain.Section{{Title: "Т", Content: "абвгдежзий"}}, 0)
	assert.True(t, res.IsValid, res.Errors)
}

func TestValidateReading_NilPointerSection(t *testing.T) {
	res := domain.ValidateReading([]*domain.Section{nil}, 0)
	assert.Equal(t, []string{"section 1: must be an object"}, res.Errors)
}

func TestZodiacSign(t *testing.T) {
	name, err := domain.ZodiacSign("Aries")
	require.NoError(t, err)
	assert.Equal(t, "Овен", name)

	name, err = domain.ZodiacSign("скорпион")
	require.NoError(t, err)
	assert.Equal(t, "Скорпион", name)

	_, err = domain.ZodiacSign("ophiuchus")
	assert.ErrorIs(t, err, domain.ErrInvalidSign)
}
