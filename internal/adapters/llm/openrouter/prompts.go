package openrouter

import (
	"fmt"
	"strings"

	"github.com/deathdaycome/Lunaria1-sub000/internal/ports"
)

const readingSystemPrompt = `Ты опытный таролог. Пиши по-русски, спокойно и поддерживающе.

Правила:
- Не давай медицинских, юридических и финансовых советов.
- Не предсказывай катастроф и не гарантируй исходов.
- Каждый раздел начинай строкой-маркером вида ### Название ###.
- Сначала по одному разделу на каждую карту в порядке позиций, затем один итоговый раздел ### Общие рекомендации ###.
- Не используй другой markdown-разметки.`

const horoscopeSystemPrompt = `Ты астролог. Пиши по-русски, тепло и без категоричных прогнозов.
Ответь одним связным текстом из двух-трёх абзацев без заголовков и списков.`

var periodNames = map[string]string{
	"day":   "на сегодня",
	"week":  "на неделю",
	"month": "на месяц",
}

func buildPrompts(in ports.GenerateInput) (system, user string, err error) {
	switch in.Kind {
	case ports.PromptReading:
		return readingSystemPrompt, buildReadingPrompt(in), nil
	case ports.PromptHoroscope:
		return horoscopeSystemPrompt, buildHoroscopePrompt(in), nil
	default:
		return "", "", fmt.Errorf("unknown prompt kind %q", in.Kind)
	}
}

func buildReadingPrompt(in ports.GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Расклад из %d карт:\n", len(in.Cards))

	for _, card := range in.Cards {
		orientation := "прямое положение"
		if card.Orientation == "reversed" {
			orientation = "перевёрнутое положение"
		}
		fmt.Fprintf(&b, "  Позиция %d: %s (%s)\n", card.Position, card.Name, orientation)
		if len(card.Keywords) > 0 {
			fmt.Fprintf(&b, "    Ключевые слова: %s\n", strings.Join(card.Keywords, ", "))
		}
		if card.Short != "" {
			fmt.Fprintf(&b, "    Значение: %s\n", card.Short)
		}
	}

	if in.Question != "" {
		fmt.Fprintf(&b, "\nВопрос: %q\n", in.Question)
	}

	fmt.Fprintf(&b, "\nНапиши ровно %d разделов: по одному на карту и итоговый.", len(in.Cards)+1)
	return b.String()
}

func buildHoroscopePrompt(in ports.GenerateInput) string {
	period, ok := periodNames[in.Period]
	if !ok {
		period = periodNames["day"]
	}
	return fmt.Sprintf("Составь гороскоп %s для знака %s.", period, in.Sign)
}
