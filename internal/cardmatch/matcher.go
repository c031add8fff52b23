// Package cardmatch recovers canonical tarot card names from free text.
package cardmatch

import (
	"regexp"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
)

// Matcher finds deck card names mentioned in text. It is immutable after
// construction and safe for concurrent use as long as its RNG is.
type Matcher struct {
	names    []string
	primary  map[string]string
	main     []string
	patterns [][]*regexp.Regexp
	rng      domain.RNG
	fold     bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithAliasFolding reports an alias hit as its card's primary name, so a
// text naming both "Жрица" and "Верховная Жрица" yields one card.
func WithAliasFolding() Option {
	return func(m *Matcher) { m.fold = true }
}

// NewMatcher builds a matcher for deck. rng drives padding when the text
// names fewer cards than requested.
func NewMatcher(deck domain.Deck, rng domain.RNG, opts ...Option) *Matcher {
	m := &Matcher{
		names:   deck.Names(),
		primary: make(map[string]string),
		main:    deck.MainNames(),
		rng:     rng,
	}
	for _, c := range deck.Cards {
		m.primary[c.Name] = c.Name
		for _, a := range c.Aliases {
			m.primary[a] = c.Name
		}
	}
	for _, opt := range opts {
		opt(m)
	}

	m.patterns = make([][]*regexp.Regexp, len(m.names))
	for i, name := range m.names {
		m.patterns[i] = namePatterns(name)
	}
	return m
}

// namePatterns returns the mention patterns for name, tried in order.
// Go's \b only knows ASCII word characters, so boundaries are spelled out.
func namePatterns(name string) []*regexp.Regexp {
	q := regexp.QuoteMeta(norm.NFC.String(name))
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + q + `(?:$|[^\p{L}\p{N}_])`),
		regexp.MustCompile(`(?i)карта\s*[-—–]?\s*` + q),
		regexp.MustCompile(`(?i)` + q + `\s*[-:—–]`),
		regexp.MustCompile(`(?i)-\s*` + q),
		regexp.MustCompile(`(?i)\(\s*` + q + `\s*\)`),
	}
}

// Extract returns exactly expectedCount distinct card names. Names found
// in text come first, in deck order; the rest are drawn at random from the
// primary names. The result is shorter only when the deck has too few
// names. A negative count yields an empty result.
func (m *Matcher) Extract(text string, expectedCount int) []string {
	if expectedCount <= 0 {
		return []string{}
	}
	text = norm.NFC.String(text)

	found := make([]string, 0, expectedCount)
	for i, name := range m.names {
		if !matchesAny(m.patterns[i], text) {
			continue
		}
		if m.fold {
			name = m.primary[name]
		}
		if !slices.Contains(found, name) {
			found = append(found, name)
		}
	}

	found = m.pad(found, expectedCount)
	if len(found) > expectedCount {
		found = found[:expectedCount]
	}
	return found
}

// pad appends random primary names until out has n entries. Drawing from
// the names not yet used is the same as drawing from all and skipping
// repeats, and it always terminates.
func (m *Matcher) pad(out []string, n int) []string {
	if len(out) >= n {
		return out
	}
	pool := make([]string, 0, len(m.main))
	for _, name := range m.main {
		if !slices.Contains(out, name) {
			pool = append(pool, name)
		}
	}
	for len(out) < n && len(pool) > 0 {
		i := m.rng.Intn(len(pool))
		out = append(out, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
