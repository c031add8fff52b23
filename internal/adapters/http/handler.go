package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/deathdaycome/Lunaria1-sub000/internal/app"
	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
	"github.com/deathdaycome/Lunaria1-sub000/internal/textproc"
)

// MaxTextLength caps, in characters, text accepted by the text endpoints.
const MaxTextLength = 20000

type Handler struct {
	svc *app.ReadingService
}

func NewHandler(svc *app.ReadingService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/tarot", h.ReadTarot)
	e.GET("/v1/horoscope", h.Horoscope)

	e.POST("/v1/text/sanitize", h.Sanitize)
	e.POST("/v1/text/sections", h.Sections)
	e.POST("/v1/text/cards", h.Cards)
	e.POST("/v1/readings/validate", h.Validate)
	e.POST("/v1/readings/analyze", h.Analyze)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ReadTarot(c echo.Context) error {
	q := c.QueryParam("q")
	if utf8.RuneCountInString(q) > 500 {
		return badRequest(c, "q must be at most 500 characters")
	}

	n := 3
	if raw := c.QueryParam("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < domain.MinSpreadCards || parsed > domain.MaxSpreadCards {
			return badRequest(c, "n must be an integer between 1 and 10")
		}
		n = parsed
	}

	spread := c.QueryParam("spread")
	if spread == "" {
		spread = "generic"
	}

	resp, err := h.svc.ReadSpread(c.Request().Context(), app.ReadSpreadRequest{
		Question:   q,
		NumCards:   n,
		DeckID:     c.QueryParam("deck"),
		SpreadType: spread,
	})
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, toTarotResponse(resp, requestID(c)))
}

func (h *Handler) Horoscope(c echo.Context) error {
	resp, err := h.svc.Horoscope(c.Request().Context(), app.HoroscopeRequest{
		Sign:   c.QueryParam("sign"),
		Period: c.QueryParam("period"),
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, HoroscopeResponse{
		Sign:   resp.Sign,
		Period: resp.Period,
		Text:   resp.Text,
		Meta:   MetaResp{Model: resp.Model, RequestID: requestID(c)},
	})
}

func (h *Handler) Sanitize(c echo.Context) error {
	var req SanitizeRequest
	if msg := bindText(c, &req, &req.Text); msg != "" {
		return badRequest(c, msg)
	}
	sanitize := textproc.Sanitize
	if req.Russian {
		sanitize = textproc.SanitizeRussian
	}
	return c.JSON(http.StatusOK, SanitizeResponse{Text: sanitize(req.Text)})
}

func (h *Handler) Sections(c echo.Context) error {
	var req SectionsRequest
	if msg := bindText(c, &req, &req.Text); msg != "" {
		return badRequest(c, msg)
	}
	limit := textproc.Unbounded
	if req.MaxSections != nil {
		if *req.MaxSections < 0 || *req.MaxSections > app.MaxCardCount {
			return badRequest(c, "max_sections out of range")
		}
		limit = *req.MaxSections
	}
	sections, strategy := textproc.Parse(req.Text, limit)
	return c.JSON(http.StatusOK, SectionsResponse{Sections: sections, Strategy: string(strategy)})
}

func (h *Handler) Cards(c echo.Context) error {
	var req CardsRequest
	if msg := bindText(c, &req, &req.Text); msg != "" {
		return badRequest(c, msg)
	}
	cards, err := h.svc.ExtractCards(c.Request().Context(), req.Deck, req.Text, req.Count)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, CardsResponse{Cards: cards})
}

func (h *Handler) Validate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.CardCount < 0 || req.CardCount > app.MaxCardCount {
		return badRequest(c, "card_count out of range")
	}
	return c.JSON(http.StatusOK, domain.ValidateReading(req.Reading, req.CardCount))
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if msg := bindText(c, &req, &req.Text); msg != "" {
		return badRequest(c, msg)
	}
	resp, err := h.svc.Analyze(c.Request().Context(), app.AnalyzeRequest{
		Text:      req.Text,
		CardCount: req.CardCount,
		DeckID:    req.Deck,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, AnalyzeResponse{
		Sections:   resp.Sections,
		Strategy:   string(resp.Strategy),
		Validation: resp.Validation,
		CardNames:  resp.CardNames,
	})
}

// bindText decodes the body into req and enforces MaxTextLength on text.
// It returns a client-facing problem description, or "" when req is usable.
func bindText(c echo.Context, req any, text *string) string {
	if err := c.Bind(req); err != nil {
		return "invalid request body"
	}
	if utf8.RuneCountInString(*text) > MaxTextLength {
		return "text must be at most " + strconv.Itoa(MaxTextLength) + " characters"
	}
	return ""
}

func toTarotResponse(r app.ReadSpreadResponse, requestID string) TarotResponse {
	cards := make([]CardResponse, len(r.Cards))
	for i, dc := range r.Cards {
		cards[i] = CardResponse{
			ID:          dc.ID,
			Name:        dc.Name,
			Position:    dc.Position,
			Orientation: dc.Orientation,
			Keywords:    dc.Keywords,
			Short:       dc.Short,
		}
	}
	return TarotResponse{
		Spread:    string(r.SpreadType),
		Deck:      r.DeckID,
		Cards:     cards,
		Sections:  r.Sections,
		CardNames: r.CardNames,
		Meta: MetaResp{
			Model:     r.Model,
			Strategy:  string(r.Strategy),
			Attempts:  r.Attempts,
			RequestID: requestID,
			LatencyMS: r.LatencyMS,
		},
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrDeckNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidN), errors.Is(err, domain.ErrNExceedsDeck),
		errors.Is(err, domain.ErrInvalidCount), errors.Is(err, domain.ErrInvalidSign),
		errors.Is(err, domain.ErrInvalidPeriod):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidReading):
		slog.Error("upstream LLM failure", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		slog.Error("internal error", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
