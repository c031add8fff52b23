package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/deathdaycome/Lunaria1-sub000/internal/domain"
)

const (
	IntroTitle   = "Введение"
	SummaryTitle = "Общие рекомендации"

	// SummaryFallback fills the summary section when no text is left for it.
	SummaryFallback = "Прислушайтесь к своей интуиции: карты указывают направление, но выбор всегда остается за вами."
	// MissingSectionContent fills card sections the text did not provide.
	MissingSectionContent = "Эта часть расклада не получила подробного толкования. Поразмышляйте над значением карты самостоятельно."

	// Unbounded tells ParseHeuristic not to cap the number of sections.
	Unbounded = -1

	genericTitle      = "Раздел %d"
	minParagraphLen   = 20
	maxInlineTitleLen = 100
	windowBuffer      = 2
)

// Strategy names the parser that produced a reading.
type Strategy string

const (
	StrategyMarkers   Strategy = "markers"
	StrategyHeuristic Strategy = "heuristic"
)

var (
	markerRe    = regexp.MustCompile(`###[ \t]*([^#\n]+?)[ \t]*###`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
)

// HasMarkers reports whether text uses "### TITLE ###" section markers.
func HasMarkers(text string) bool {
	return markerRe.MatchString(text)
}

// Parse picks ParseMarkered when text has markers and ParseHeuristic
// otherwise.
func Parse(text string, maxSections int) (domain.Reading, Strategy) {
	if HasMarkers(text) {
		return ParseMarkered(text), StrategyMarkers
	}
	return ParseHeuristic(text, maxSections), StrategyHeuristic
}

// ParseMarkered splits text on "### TITLE ###" markers. Text before the
// first marker becomes an IntroTitle section. Sections whose title or
// content is empty after sanitizing are dropped.
func ParseMarkered(text string) domain.Reading {
	out := domain.Reading{}
	if text == "" {
		return out
	}

	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	pre := text
	if len(locs) > 0 {
		pre = text[:locs[0][0]]
	}
	if content := Sanitize(pre); content != "" {
		out = append(out, domain.Section{Title: IntroTitle, Content: content})
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		title := Sanitize(text[loc[2]:loc[3]])
		content := Sanitize(text[loc[1]:end])
		if title == "" || content == "" {
			continue
		}
		out = append(out, domain.Section{Title: title, Content: content})
	}
	return out
}

// ParseHeuristic splits text into paragraphs and turns each into a
// section, detecting a short leading sentence as its title.
//
// With maxSections >= 0 the result always has exactly maxSections+1
// entries: card sections (padded with MissingSectionContent when the text
// runs short) and a trailing SummaryTitle section holding the paragraphs
// that were not consumed. Pass Unbounded to get one section per paragraph
// and no summary.
func ParseHeuristic(text string, maxSections int) domain.Reading {
	paragraphs := splitParagraphs(SanitizeRussian(text))
	out := domain.Reading{}

	if maxSections < 0 {
		for _, p := range paragraphs {
			out = append(out, paragraphSection(p, len(out)+1))
		}
		return out
	}

	window := paragraphs
	if len(window) > maxSections+windowBuffer {
		window = window[:maxSections+windowBuffer]
	}
	used := 0
	for _, p := range window {
		if len(out) >= maxSections {
			break
		}
		out = append(out, paragraphSection(p, len(out)+1))
		used++
	}
	for len(out) < maxSections {
		out = append(out, domain.Section{
			Title:   fmt.Sprintf(genericTitle, len(out)+1),
			Content: MissingSectionContent,
		})
	}

	summary := strings.Join(paragraphs[used:], "\n\n")
	if summary == "" {
		summary = SummaryFallback
	}
	out = append(out, domain.Section{Title: SummaryTitle, Content: summary})

	if len(out) > maxSections+1 {
		out = out[:maxSections+1]
	}
	return out
}

func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, p := range paragraphRe.Split(text, -1) {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) < minParagraphLen {
			continue
		}
		out = append(out, p)
	}
	return out
}

// paragraphSection uses the paragraph's first sentence as the title when
// it is short and enough text follows it.
func paragraphSection(p string, n int) domain.Section {
	if title, content, ok := splitInlineTitle(p); ok {
		return domain.Section{Title: title, Content: content}
	}
	return domain.Section{Title: fmt.Sprintf(genericTitle, n), Content: p}
}

func splitInlineTitle(p string) (string, string, bool) {
	idx := strings.IndexAny(p, ".!?")
	if idx < 0 {
		return "", "", false
	}
	end := idx + 1
	for end < len(p) && strings.IndexByte(".!?", p[end]) >= 0 {
		end++
	}
	if utf8.RuneCountInString(p[:end]) >= maxInlineTitleLen {
		return "", "", false
	}

	title := strings.TrimSpace(strings.TrimRight(p[:end], ".!?"))
	content := strings.TrimSpace(p[end:])
	if title == "" || utf8.RuneCountInString(content) < domain.MinSectionContent {
		return "", "", false
	}
	return title, content, true
}
