package sentiment

import (
	"context"
	"fmt"
	"strings"

	"insight-alpha/services"
)

const classifierSystemPrompt = `You are a financial news sentiment classifier.
You will be given a single news headline about a publicly traded company.

Respond with exactly one word, the sentiment of the headline for the company's stock:
positive, negative, or neutral.

Do not explain. Do not add punctuation. One word only.`

// Classifier assigns a categorical sentiment label to a single headline.
type Classifier interface {
	Classify(ctx context.Context, headline string) (string, error)
}

// ModelClassifier classifies headlines through the pretrained sentiment
// model behind the LLM service. The underlying client is created once at
// process start and reused read-only across requests.
type ModelClassifier struct {
	llm services.LLMService
}

// NewModelClassifier creates a ModelClassifier on top of an LLM service.
func NewModelClassifier(llm services.LLMService) *ModelClassifier {
	return &ModelClassifier{llm: llm}
}

// Classify invokes the model once for the headline and returns its label.
func (c *ModelClassifier) Classify(ctx context.Context, headline string) (string, error) {
	response, err := c.llm.InvokeWithPrompt(ctx, classifierSystemPrompt, headline)
	if err != nil {
		return "", fmt.Errorf("failed to classify headline: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(response))
	if fields := strings.Fields(label); len(fields) > 0 {
		label = strings.Trim(fields[0], ".,!\"'")
	}
	if label == "" {
		return "", fmt.Errorf("empty label from model")
	}

	return label, nil
}
