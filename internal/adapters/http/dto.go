package http

import "github.com/deathdaycome/Lunaria1-sub000/internal/domain"

// TarotResponse is the JSON shape returned by GET /v1/tarot.
type TarotResponse struct {
	Spread    string           `json:"spread"`
	Deck      string           `json:"deck"`
	Cards     []CardResponse   `json:"cards"`
	Sections  []domain.Section `json:"sections"`
	CardNames []string         `json:"card_names"`
	Meta      MetaResp         `json:"meta"`
}

type CardResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Position    int                `json:"position"`
	Orientation domain.Orientation `json:"orientation"`
	Keywords    []string           `json:"keywords"`
	Short       string             `json:"short"`
}

type MetaResp struct {
	Model     string `json:"model"`
	Strategy  string `json:"strategy,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
}

// HoroscopeResponse is returned by GET /v1/horoscope.
type HoroscopeResponse struct {
	Sign   string   `json:"sign"`
	Period string   `json:"period"`
	Text   string   `json:"text"`
	Meta   MetaResp `json:"meta"`
}

type SanitizeRequest struct {
	Text    string `json:"text"`
	Russian bool   `json:"russian"`
}

type SanitizeResponse struct {
	Text string `json:"text"`
}

type SectionsRequest struct {
	Text string `json:"text"`
	// MaxSections caps heuristic parsing; omitted means unbounded.
	MaxSections *int `json:"max_sections"`
}

type SectionsResponse struct {
	Sections []domain.Section `json:"sections"`
	Strategy string           `json:"strategy"`
}

type CardsRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
	Deck  string `json:"deck"`
}

type CardsResponse struct {
	Cards []string `json:"cards"`
}

// ValidateRequest accepts any JSON as the reading so that shape errors are
// reported by the validator rather than by the decoder.
type ValidateRequest struct {
	Reading   any `json:"reading"`
	CardCount int `json:"card_count"`
}

type AnalyzeRequest struct {
	Text      string `json:"text"`
	CardCount int    `json:"card_count"`
	Deck      string `json:"deck"`
}

type AnalyzeResponse struct {
	Sections   []domain.Section        `json:"sections"`
	Strategy   string                  `json:"strategy"`
	Validation domain.ValidationResult `json:"validation"`
	CardNames  []string                `json:"card_names"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
