package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
)

const draftPrompt = `You are an expert AI at parsing user requests into a structured JSON format. Dissect the user's question and provide a clean plan for another program to build a SQL query.

Fields to extract:
- "query_type": one of ["Statistic", "Proximity", "Trajectory", "Profile", "Time-Series", "Scatter", "General"].
- "metrics": list of sensor variables mentioned (e.g. ["temperature", "salinity", "dissolved_oxygen"]).
- "location_name": name of a geographic location (e.g. "chennai", "arabian sea", "equator").
- "time_constraint": string describing the time filter (e.g. "in March in 2024").
- "distance_km": a distance limit if mentioned (e.g. "within 700 km").
- "aggregation": for statistics, one of "avg", "max", "min", "count", "sum". For "count unique floats" use "count".
- "float_id": the integer ID of a float if mentioned.
- "limit": an integer limit if mentioned (e.g. "top 5").

User question: %q

Return ONLY a single JSON object with the extracted fields.`

const narratePrompt = `You are a helpful oceanographer's assistant. Generate a specific, data-driven response based on the query results.

User question: %q
Query type: %q
Result statistics: %q
Sample data: %q

Rules:
1. Be specific: mention actual numbers, float IDs, locations and temperatures from the data.
2. Be concise: two or three sentences maximum.
3. Do not mention limited data availability unless there are zero results.
4. Include actionable insight based on the actual values.`

var jsonBlobRe = regexp.MustCompile(`(?s)\{.*\}`)

// LLMClient drafts intents through an OpenAI-compatible chat endpoint
// (Groq by default). It also implements Narrator.
type LLMClient struct {
	log     *slog.Logger
	cli     *openai.Client
	model   string
	timeout time.Duration
}

func NewLLMClient(log *slog.Logger, apiKey, baseURL, modelName string, timeout time.Duration) *LLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LLMClient{
		log:     log,
		cli:     openai.NewClientWithConfig(cfg),
		model:   modelName,
		timeout: timeout,
	}
}

func (c *LLMClient) Draft(ctx context.Context, question string) (model.RawIntent, error) {
	content, err := c.complete(ctx, fmt.Sprintf(draftPrompt, question))
	if err != nil {
		return nil, fmt.Errorf("draft intent: %w", err)
	}
	blob := jsonBlobRe.FindString(content)
	if blob == "" {
		return nil, fmt.Errorf("draft intent: no JSON object in model response")
	}
	var raw model.RawIntent
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("draft intent: decode JSON: %w", err)
	}
	return raw, nil
}

func (c *LLMClient) Narrate(ctx context.Context, question, queryType, digest, sample string) (string, error) {
	content, err := c.complete(ctx, fmt.Sprintf(narratePrompt, question, queryType, digest, sample))
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}
	return content, nil
}

func (c *LLMClient) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	observability.ObserveUpstreamLatency("llm", time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choice list")
	}
	return resp.Choices[0].Message.Content, nil
}
