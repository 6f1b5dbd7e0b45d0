package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-landwatch/types"
)

const systemPrompt = "You are a senior environmental policy analyst extracting structured data from Federal Register documents. " +
	"Identify the US states affected. Categorize the document as one of mining, logging, land_transfer, conservation_rollback or other. " +
	"Provide a 2-sentence summary. Assess impact level as either low, medium, or high, " +
	"also assign an impact score from 1-10 (10 being tremendous environmental/land change), " +
	"and state whether the action is beneficial, detrimental or neutral for the environment. " +
	"Respond in JSON format with keys: locations (list), category, summary, impact_level, impact_score (int), environment_effect."

const (
	defaultSummary = "No summary available."
	defaultScore   = 5
)

// Analyzer extracts locations, category and impact from a document.
type Analyzer interface {
	Analyze(ctx context.Context, title, abstract string) (types.Analysis, error)
}

// OpenAIAnalyzer asks a chat model for a JSON object describing the document.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

func NewOpenAIAnalyzer(apiKey, model, baseURL string) *OpenAIAnalyzer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnalyzer{client: openai.NewClientWithConfig(cfg), model: model}
}

// Analyze returns Fallback() together with the error when the model call or the
// JSON it returned is unusable.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, title, abstract string) (types.Analysis, error) {
	if abstract == "" {
		abstract = "No abstract provided."
	}
	prompt := fmt.Sprintf("Title: %s\nAbstract: %s", title, abstract)

	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return Fallback(), fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Fallback(), fmt.Errorf("openai returned empty response or choices")
	}

	out, err := Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return Fallback(), err
	}
	return out, nil
}

// Fallback is the analysis used when a document could not be analysed.
func Fallback() types.Analysis {
	return types.Analysis{
		Locations:   []string{},
		Category:    "error",
		Summary:     "Failed to parse document.",
		ImpactLevel: "unknown",
		ImpactScore: defaultScore,
	}
}

// Parse decodes the model's JSON reply and fills in missing fields.
func Parse(raw string) (types.Analysis, error) {
	var aux struct {
		Locations         []string `json:"locations"`
		Category          string   `json:"category"`
		Summary           string   `json:"summary"`
		ImpactLevel       string   `json:"impact_level"`
		ImpactScore       any      `json:"impact_score"`
		EnvironmentEffect string   `json:"environment_effect"`
	}
	if err := json.Unmarshal([]byte(raw), &aux); err != nil {
		return types.Analysis{}, fmt.Errorf("decode analysis json: %w", err)
	}

	out := types.Analysis{
		Locations:         make([]string, 0, len(aux.Locations)),
		Category:          aux.Category,
		Summary:           aux.Summary,
		ImpactLevel:       aux.ImpactLevel,
		ImpactScore:       score(aux.ImpactScore),
		EnvironmentEffect: aux.EnvironmentEffect,
	}
	for _, l := range aux.Locations {
		if l = strings.TrimSpace(l); l != "" {
			out.Locations = append(out.Locations, l)
		}
	}
	if out.Category == "" {
		out.Category = string(types.OtherCategory)
	}
	if out.Summary == "" {
		out.Summary = defaultSummary
	}
	if out.ImpactLevel == "" {
		out.ImpactLevel = string(types.Low)
	}
	return out, nil
}

func score(v any) int {
	var n int
	switch s := v.(type) {
	case float64:
		n = int(s)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return defaultScore
		}
		n = parsed
	default:
		return defaultScore
	}
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
