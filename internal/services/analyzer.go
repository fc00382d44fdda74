package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/reviewlens/backend/internal/config"
	"github.com/reviewlens/backend/internal/models"
	"github.com/reviewlens/backend/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// jsonObjectRegex extracts the first JSON object from a model reply that
// may wrap it in prose or a markdown fence.
var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

const reviewPromptTemplate = `You are an expert code reviewer. Analyze the following code and provide a detailed review.

Filename: %s

Code:
%s

Provide your review in the following JSON format, with no text outside the JSON object:
{
    "overall_quality_score": <number 0-100>,
    "summary": "<brief summary of code quality>",
    "errors": [
        {"type": "<error type>", "line": <line number or null>, "description": "<description>"}
    ],
    "warnings": [
        {"type": "<warning type>", "line": <line number or null>, "description": "<description>"}
    ],
    "suggestions": [
        {"category": "<category>", "description": "<suggestion>"}
    ],
    "strengths": ["<strength 1>", "<strength 2>"],
    "readability_score": <number 0-100>,
    "modularity_score": <number 0-100>,
    "best_practices_score": <number 0-100>
}

Be thorough and specific. Focus on code structure, naming, potential bugs,
security vulnerabilities, performance, and best practices adherence.`

// AnalyzerService submits source files to the configured LLM provider and
// normalizes the reply into a score plus an ordered issue list.
type AnalyzerService struct {
	cfg *config.LLMConfig
}

func NewAnalyzerService(cfg *config.LLMConfig) *AnalyzerService {
	return &AnalyzerService{cfg: cfg}
}

// AnalysisResult is the normalized outcome of one model review.
type AnalysisResult struct {
	Score         float64          `json:"score"`
	Summary       string           `json:"summary"`
	Issues        models.IssueList `json:"issues"`
	Strengths     []string         `json:"strengths"`
	Readability   float64          `json:"readability_score"`
	Modularity    float64          `json:"modularity_score"`
	BestPractices float64          `json:"best_practices_score"`
}

// Analyze reviews the given source text. Failures cover quota, malformed
// model output, and upstream-service errors; nothing is persisted here and
// nothing is retried.
func (s *AnalyzerService) Analyze(ctx context.Context, code, filename string) (*AnalysisResult, error) {
	prompt := fmt.Sprintf(reviewPromptTemplate, filename, code)

	logger.Debug().
		Str("filename", filename).
		Int("prompt_chars", len(prompt)).
		Str("provider", s.cfg.Provider).
		Msg("submitting analysis")

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	logger.Info().
		Str("filename", filename).
		Float64("score", result.Score).
		Int("issues", len(result.Issues)).
		Msg("analysis completed")

	return result, nil
}

// complete dispatches to the provider-specific call based on config.
func (s *AnalyzerService) complete(ctx context.Context, prompt string) (string, error) {
	switch s.cfg.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "ollama":
		return s.callOllama(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	default:
		// openai and other OpenAI-compatible services (Groq, DeepSeek, ...)
		return s.callOpenAI(ctx, prompt)
	}
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (s *AnalyzerService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.cfg.APIKey)
	if s.cfg.BaseURL != "" {
		clientConfig.BaseURL = s.cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.3)
	if s.cfg.Temperature > 0 {
		temperature = float32(s.cfg.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert code reviewer who provides detailed, actionable feedback.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// callAnthropic handles Anthropic Claude API using the native SDK
func (s *AnalyzerService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	maxTokens := int64(s.cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.cfg.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

// callOllama handles Ollama API using the native SDK
func (s *AnalyzerService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: s.cfg.Model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": s.cfg.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

// callGemini handles Google Gemini API using the native SDK
func (s *AnalyzerService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// rawAnalysis mirrors the JSON shape requested from the model.
type rawAnalysis struct {
	OverallQualityScore float64 `json:"overall_quality_score"`
	Summary             string  `json:"summary"`
	Errors              []struct {
		Type        string `json:"type"`
		Line        *int   `json:"line"`
		Description string `json:"description"`
	} `json:"errors"`
	Warnings []struct {
		Type        string `json:"type"`
		Line        *int   `json:"line"`
		Description string `json:"description"`
	} `json:"warnings"`
	Suggestions []struct {
		Category    string `json:"category"`
		Description string `json:"description"`
	} `json:"suggestions"`
	Strengths          []string `json:"strengths"`
	ReadabilityScore   float64  `json:"readability_score"`
	ModularityScore    float64  `json:"modularity_score"`
	BestPracticesScore float64  `json:"best_practices_score"`
}

// parseAnalysis extracts and normalizes the JSON review from a model reply.
// Issue order is errors, then warnings, then suggestions, each in reply
// order.
func parseAnalysis(content string) (*AnalysisResult, error) {
	payload := jsonObjectRegex.FindString(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("malformed review JSON: %w", err)
	}

	result := &AnalysisResult{
		Score:         clampScore(raw.OverallQualityScore),
		Summary:       raw.Summary,
		Issues:        models.IssueList{},
		Strengths:     raw.Strengths,
		Readability:   clampScore(raw.ReadabilityScore),
		Modularity:    clampScore(raw.ModularityScore),
		BestPractices: clampScore(raw.BestPracticesScore),
	}

	for _, e := range raw.Errors {
		result.Issues = append(result.Issues, models.Issue{
			Severity: models.SeverityError,
			Message:  issueMessage(e.Type, e.Description),
			Line:     e.Line,
		})
	}
	for _, w := range raw.Warnings {
		result.Issues = append(result.Issues, models.Issue{
			Severity: models.SeverityWarning,
			Message:  issueMessage(w.Type, w.Description),
			Line:     w.Line,
		})
	}
	for _, sug := range raw.Suggestions {
		result.Issues = append(result.Issues, models.Issue{
			Severity: models.SeveritySuggestion,
			Message:  issueMessage(sug.Category, sug.Description),
		})
	}

	return result, nil
}

func issueMessage(kind, description string) string {
	if kind == "" {
		return description
	}
	if description == "" {
		return kind
	}
	return kind + ": " + description
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
