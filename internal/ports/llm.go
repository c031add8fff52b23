package ports

import "context"

// PromptKind selects what the generator is asked to write.
type PromptKind string

const (
	PromptReading   PromptKind = "reading"
	PromptHoroscope PromptKind = "horoscope"
)

// GenerateInput holds everything the LLM needs to write a text.
type GenerateInput struct {
	Kind     PromptKind
	Question string
	Cards    []CardInput

	Sign   string
	Period string
}

// CardInput is a simplified card representation for the LLM prompt.
type CardInput struct {
	Name        string
	Position    int
	Orientation string
	Keywords    []string
	Short       string
}

// GenerateOutput is the raw, unparsed LLM answer.
type GenerateOutput struct {
	Text  string
	Model string
}

// Generator produces free-form text via an LLM. The text is not trusted to
// follow any format; callers parse and validate it.
type Generator interface {
	Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error)
}
