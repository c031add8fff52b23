// Package textproc turns free-form, markdown-flavoured LLM output into plain
// text and ordered sections.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single text transformation.
type Rule func(string) string

// Pipeline is an ordered list of rules. Each rule sees the output of the
// previous one.
type Pipeline []Rule

// Apply runs every rule in order.
func (p Pipeline) Apply(text string) string {
	for _, r := range p {
		text = r(text)
	}
	return text
}

// Settle applies p until the text stops changing, so that applying it
// again is a no-op. Removing one marker can expose another, as in
// "1. - item" or "**1. item". The pass count is bounded by the rune count,
// since every changing pass of a shrinking pipeline drops at least one
// character or rewrites one into its final form.
func (p Pipeline) Settle(text string) string {
	limit := utf8.RuneCountInString(text) + 2
	for range limit {
		next := p.Apply(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// ReplaceRule returns a rule that replaces every match of pattern with repl.
// It panics on an invalid pattern, so call it only with constant patterns.
func ReplaceRule(pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

var (
	StripBold          = chain(ReplaceRule(`\*\*(.*?)\*\*`, "${1}"), ReplaceRule(`__(.*?)__`, "${1}"))
	StripItalic        = chain(emphasisRule('*'), emphasisRule('_'))
	StripHeaders       = ReplaceRule(`(?m)^[ \t]*(?:#{1,6}[ \t]+)+`, "")
	StripBullets       = ReplaceRule(`(?m)^[ \t]*(?:[-*+][ \t]+)+`, "")
	StripOrderedList   = ReplaceRule(`(?m)^[ \t]*(?:\d+\.[ \t]+)+`, "")
	StripCodeBlocks    = ReplaceRule("(?s)```.*?```", "")
	StripInlineCode    = ReplaceRule("`([^`\n]+)`", "${1}")
	StripLinks         = ReplaceRule(`\[([^\]\n]*)\]\([^)\n]*\)`, "${1}")
	StripResidual      = chain(ReplaceRule(`\*{2,}`, ""), ReplaceRule(`#{2,}[ \t]*`, ""))
	CollapseBlankLines = ReplaceRule(`\n{3,}`, "\n\n")
	TrimSpace          = Rule(strings.TrimSpace)

	GuillemetQuotes    = Rule(guillemets)
	CollapseEllipsis   = ReplaceRule(`\.{3,}`, "...")
	CollapseExclaim    = ReplaceRule(`!{2,}`, "!")
	CollapseQuestion   = ReplaceRule(`\?{2,}`, "?")
	CollapseWhitespace = ReplaceRule(`[^\S\n]+`, " ")
)

// MarkdownRules returns the markdown stripping pipeline.
func MarkdownRules() Pipeline {
	return Pipeline{
		StripBold,
		StripItalic,
		StripHeaders,
		StripBullets,
		StripOrderedList,
		StripCodeBlocks,
		StripInlineCode,
		StripLinks,
		StripResidual,
		CollapseBlankLines,
		TrimSpace,
	}
}

// RussianRules returns MarkdownRules followed by typographic cleanup for
// Russian prose. Newlines survive so paragraphs can still be split.
func RussianRules() Pipeline {
	return append(MarkdownRules(),
		GuillemetQuotes,
		CollapseEllipsis,
		CollapseExclaim,
		CollapseQuestion,
		CollapseWhitespace,
		TrimSpace,
	)
}

var (
	markdownPipeline = MarkdownRules()
	russianPipeline  = RussianRules()
)

// Sanitize strips markdown syntax from text. Empty input yields "".
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return markdownPipeline.Settle(text)
}

// SanitizeRussian is Sanitize plus quote, punctuation and whitespace
// normalisation.
func SanitizeRussian(text string) string {
	if text == "" {
		return ""
	}
	return russianPipeline.Settle(text)
}

func chain(rules ...Rule) Rule {
	return Pipeline(rules).Apply
}

// emphasisRule removes single-character emphasis markers. A marker only
// counts when it is not part of a doubled marker, the opening one is not
// followed by whitespace and the closing one is not preceded by it. Pairs
// never span lines, so list bullets like "* item" are left alone.
func emphasisRule(marker byte) Rule {
	return func(s string) string {
		if strings.IndexByte(s, marker) < 0 {
			return s
		}
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = stripEmphasisLine(line, marker)
		}
		return strings.Join(lines, "\n")
	}
}

func stripEmphasisLine(line string, marker byte) string {
	open := -1
	var drop []int
	for i := 0; i < len(line); i++ {
		if line[i] != marker {
			continue
		}
		if (i > 0 && line[i-1] == marker) || (i+1 < len(line) && line[i+1] == marker) {
			continue
		}
		if open >= 0 && i > open+1 && !spaceBefore(line, i) {
			drop = append(drop, open, i)
			open = -1
			continue
		}
		if !spaceAfter(line, i) {
			open = i
		}
	}
	if len(drop) == 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))
	prev := 0
	for _, idx := range drop {
		b.WriteString(line[prev:idx])
		prev = idx + 1
	}
	b.WriteString(line[prev:])
	return b.String()
}

func spaceBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r == utf8.RuneError || unicode.IsSpace(r)
}

func spaceAfter(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i+1:])
	return r == utf8.RuneError || unicode.IsSpace(r)
}

// guillemets replaces straight double quotes with alternating « and ».
func guillemets(s string) string {
	if !strings.Contains(s, `"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + strings.Count(s, `"`))
	open := true
	for _, r := range s {
		if r != '"' {
			b.WriteRune(r)
			continue
		}
		if open {
			b.WriteRune('«')
		} else {
			b.WriteRune('»')
		}
		open = !open
	}
	return b.String()
}
