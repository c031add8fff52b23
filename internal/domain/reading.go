package domain

import (
	"fmt"
	"strings"
)

// MinSectionContent is the shortest content, in characters, a section may
// carry and still count as a valid part of a reading.
const MinSectionContent = 10

// Section is one titled block of a structured LLM answer.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Reading is an ordered list of sections: one per drawn card followed by
// exactly one summary section.
type Reading []Section

// Validate checks r against the expected number of cards.
func (r Reading) Validate(expectedCardCount int) ValidationResult {
	return ValidateReading([]Section(r), expectedCardCount)
}

// ValidationResult reports every structural problem found in a reading.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// sectionView is the shape-agnostic form of one reading entry.
type sectionView struct {
	object  bool
	title   string
	hasT    bool
	content string
	hasC    bool
}

// ValidateReading checks that reading holds expectedCardCount+1 sections,
// each with a non-empty string title and content of at least MinSectionContent
// characters. reading may be a Reading, []Section, []*Section or decoded
// JSON ([]any of objects). All violations are collected; it never panics.
func ValidateReading(reading any, expectedCardCount int) ValidationResult {
	views, ok := viewSections(reading)
	if !ok {
		return result([]string{"reading must be an array of sections"})
	}

	var errs []string
	if want := expectedCardCount + 1; len(views) != want {
		errs = append(errs, fmt.Sprintf(
			"expected %d sections (%d cards + summary), got %d", want, expectedCardCount, len(views)))
	}

	for i, v := range views {
		pos := i + 1
		if !v.object {
			errs = append(errs, fmt.Sprintf("section %d: must be an object", pos))
			continue
		}
		switch {
		case !v.hasT:
			errs = append(errs, fmt.Sprintf("section %d: title must be a string", pos))
		case strings.TrimSpace(v.title) == "":
			errs = append(errs, fmt.Sprintf("section %d: title must not be empty", pos))
		}
		switch {
		case !v.hasC:
			errs = append(errs, fmt.Sprintf("section %d: content must be a string", pos))
		case runeLen(v.content) < MinSectionContent:
			errs = append(errs, fmt.Sprintf(
				"section %d: content length %d is below minimum %d", pos, runeLen(v.content), MinSectionContent))
		}
	}

	return result(errs)
}

func result(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func viewSections(reading any) ([]sectionView, bool) {
	switch r := reading.(type) {
	case Reading:
		return viewSections([]Section(r))
	case []Section:
		out := make([]sectionView, len(r))
		for i, s := range r {
			out[i] = sectionView{object: true, title: s.Title, hasT: true, content: s.Content, hasC: true}
		}
		return out, true
	case []*Section:
		out := make([]sectionView, len(r))
		for i, s := range r {
			if s != nil {
				out[i] = sectionView{object: true, title: s.Title, hasT: true, content: s.Content, hasC: true}
			}
		}
		return out, true
	case []map[string]any:
		out := make([]sectionView, len(r))
		for i, m := range r {
			out[i] = viewObject(m)
		}
		return out, true
	case []any:
		out := make([]sectionView, len(r))
		for i, item := range r {
			switch s := item.(type) {
			case map[string]any:
				out[i] = viewObject(s)
			case Section:
				out[i] = sectionView{object: true, title: s.Title, hasT: true, content: s.Content, hasC: true}
			case *Section:
				if s != nil {
					out[i] = sectionView{object: true, title: s.Title, hasT: true, content: s.Content, hasC: true}
				}
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func viewObject(m map[string]any) sectionView {
	if m == nil {
		return sectionView{}
	}
	v := sectionView{object: true}
	v.title, v.hasT = m["title"].(string)
	v.content, v.hasC = m["content"].(string)
	return v
}

func runeLen(s string) int {
	return len([]rune(s))
}
