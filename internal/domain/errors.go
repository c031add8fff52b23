package domain

import "errors"

var (
	ErrInvalidN       = errors.New("n must be between 1 and 10")
	ErrNExceedsDeck   = errors.New("n exceeds number of cards in deck")
	ErrDeckNotFound   = errors.New("deck not found")
	ErrUpstreamLLM    = errors.New("upstream LLM failure")
	ErrInvalidReading = errors.New("generated reading failed validation")
	ErrInvalidSign    = errors.New("unknown zodiac sign")
	ErrInvalidCount   = errors.New("card count out of range")
	ErrInvalidPeriod  = errors.New("unknown horoscope period")
)
