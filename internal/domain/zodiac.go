package domain

import "strings"

var zodiacSigns = map[string]string{
	"aries":       "Овен",
	"taurus":      "Телец",
	"gemini":      "Близнецы",
	"cancer":      "Рак",
	"leo":         "Лев",
	"virgo":       "Дева",
	"libra":       "Весы",
	"scorpio":     "Скорпион",
	"sagittarius": "Стрелец",
	"capricorn":   "Козерог",
	"aquarius":    "Водолей",
	"pisces":      "Рыбы",
}

// ZodiacSign resolves a sign key ("aries") or its Russian name ("Овен") to
// the Russian name.
func ZodiacSign(s string) (string, error) {
	s = strings.TrimSpace(s)
	if name, ok := zodiacSigns[strings.ToLower(s)]; ok {
		return name, nil
	}
	for _, name := range zodiacSigns {
		if strings.EqualFold(name, s) {
			return name, nil
		}
	}
	return "", ErrInvalidSign
}
