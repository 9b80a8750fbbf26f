package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"pcos-companion/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical PCOS lifestyle companion.

You receive the result of a PCOS risk assessment: a probability, a model confidence, a categorical risk level, and a list of prioritized lifestyle recommendations produced by the assessment service. You must base your narrative only on the provided data.

Your goals:
- Restate the result in clear, neutral, non-alarming language.
- Summarize what the recommendations focus on and why they fit the inputs.
- Suggest how to turn the highest-priority recommendations into weekly habits.

Rules:
- Do NOT diagnose, and do NOT contradict the provided risk level.
- Do NOT mention diseases other than PCOS, doctors, medication, or treatment.
- Focus only on behavior and routines (movement, sleep, stress, food patterns).
- Always remind the reader that only a healthcare provider can diagnose PCOS.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences restating the result in plain language.",
  "focus_areas": [
    "3-5 bullet points naming what the recommendations concentrate on."
  ],
  "weekly_habits": [
    "3-5 concrete weekly habits derived from the high-priority recommendations."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing one assessment result.

- "probability" and "confidence" are in [0,1].
- "risk_level" is one of Low, Moderate, High.
- "recommendations" are ordered cards with a priority and action items.

JSON:

%s

Based on this data, respond in the required JSON format.`

// Guidance is the narrative generated for an assessment result.
type Guidance struct {
	Summary      string   `json:"summary"`
	FocusAreas   []string `json:"focus_areas"`
	WeeklyHabits []string `json:"weekly_habits"`
}

// GuidanceLLM is the interface for generating result narratives.
type GuidanceLLM interface {
	// GenerateGuidance turns an assessment result into a narrative.
	GenerateGuidance(ctx context.Context, result *domain.PredictionResult) (*Guidance, error)
}

// OpenAIClient implements GuidanceLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating guidance.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateGuidance calls OpenAI to narrate an assessment result.
func (c *OpenAIClient) GenerateGuidance(ctx context.Context, result *domain.PredictionResult) (*Guidance, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize result: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(resultJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var guidance Guidance
	if err := json.Unmarshal([]byte(content), &guidance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &guidance, nil
}
