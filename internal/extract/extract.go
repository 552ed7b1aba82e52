// Package extract turns a free-text recipe prompt into structured ingredient
// mentions using Claude. It is the only non-deterministic stage; everything
// downstream of its output is pure.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/greenbasket/grocer-cli/pkg/anthropic"
)

const systemPrompt = `You extract grocery ingredients from a cooking request.
Return ONLY a JSON object of the form:
{"ingredients": [{"name": "...", "form": "...", "quantity": "..."}], "servings": 0}
Rules:
- "name" is the plain ingredient name, lowercase, singular where natural.
- "form" is one of: fresh, dried, powder, ground, seeds, paste, whole, canned, frozen. Omit when the request does not imply one.
- "quantity" is the amount as written, e.g. "2 lbs". Omit when absent.
- "servings" is the serving count if stated, else 0.
- Do not invent ingredients the request does not mention or clearly imply.`

// Mention is one extracted ingredient as Claude reported it.
type Mention struct {
	Name     string `json:"name"`
	Form     string `json:"form,omitempty"`
	Quantity string `json:"quantity,omitempty"`
}

type extractResponse struct {
	Ingredients []Mention `json:"ingredients"`
	Servings    int       `json:"servings"`
}

// Result is the structured output of one extraction call.
type Result struct {
	Mentions []Mention
	Servings int
}

// Extractor calls Claude to parse prompts.
type Extractor struct {
	client anthropic.Client
	model  string
}

// New creates an Extractor using the given client and model ID.
func New(client anthropic.Client, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// Extract parses one recipe prompt. A prompt that yields no ingredients is an
// error; the planner has nothing to do with an empty list.
func (e *Extractor) Extract(ctx context.Context, prompt string) (*Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, eris.New("extract: empty prompt")
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: 1024,
		System:    []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages:  []anthropic.Message{{Role: "user", Content: fmt.Sprintf("Request: %s", prompt)}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "extract: claude request")
	}
	resp.Usage.LogCost(e.model, "extract")

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, eris.New("extract: empty claude response")
	}

	// Find JSON in the response (it may have surrounding text).
	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart < 0 || jsonEnd < 0 || jsonEnd <= jsonStart {
		return nil, eris.Errorf("extract: no JSON in response: %s", text)
	}

	var parsed extractResponse
	if err := json.Unmarshal([]byte(text[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, eris.Wrap(err, "extract: parse response JSON")
	}
	if len(parsed.Ingredients) == 0 {
		return nil, eris.New("extract: no ingredients found in prompt")
	}

	zap.L().Debug("extraction complete",
		zap.Int("ingredients", len(parsed.Ingredients)),
		zap.Int("servings", parsed.Servings),
	)
	return &Result{Mentions: parsed.Ingredients, Servings: parsed.Servings}, nil
}
