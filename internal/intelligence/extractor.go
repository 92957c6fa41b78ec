package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/llm"
)

// maxMaterialChars bounds how much raw material goes into one extraction
// prompt. PDF dumps can run to hundreds of pages; chapter structure is
// almost always visible in the first chunk.
const maxMaterialChars = 24000

type llmExtractor struct {
	client llm.Client
}

// NewLLMExtractor creates a CourseExtractor backed by an LLM client.
func NewLLMExtractor(client llm.Client) CourseExtractor {
	return &llmExtractor{client: client}
}

func (e *llmExtractor) Extract(ctx context.Context, material string) (*domain.TopicList, error) {
	material = strings.TrimSpace(material)
	if material == "" {
		return nil, fmt.Errorf("no course material to extract from")
	}
	if len(material) > maxMaterialChars {
		material = material[:maxMaterialChars]
	}

	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   material,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction failed: %w", err)
	}

	topics, err := llm.ExtractJSON[domain.TopicList](resp.Text, validateTopicList)
	if err != nil {
		return nil, fmt.Errorf("failed to extract topic list: %w", err)
	}

	topics.Normalize()
	return &topics, nil
}

func validateTopicList(t domain.TopicList) error {
	// Grades are coerced, not rejected; models write "High" and "hard" and
	// neither should sink an otherwise good extraction.
	t.Normalize()
	errs := t.Validate()
	if len(errs) == 0 {
		return nil
	}
	msg := fmt.Sprintf("topic list invalid (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
