package planner

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/llm"
	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
	"github.com/onetrip/travel-planner/pkg/metrics"
)

// Result size caps per detection branch.
const (
	maxAmbiguitiesLLM      = 5
	maxAmbiguitiesFallback = 3
)

// Detector finds gaps in trip parameters and generates clarifying questions.
type Detector struct {
	client llm.Client
	logger *logger.Logger
}

// NewDetector creates a detector. client may be nil.
func NewDetector(client llm.Client, log *logger.Logger) *Detector {
	return &Detector{client: client, logger: log}
}

// Detect returns a ranked list of clarification questions, at most 5 on the
// LLM path and at most 3 on the fallback path. It never fails outward.
func (d *Detector) Detect(ctx context.Context, travelInfo string, params model.TripParameters) ([]model.Ambiguity, Source) {
	if d.client == nil {
		metrics.RecordFallback("ambiguity", "no_client")
		return d.fallback(params), SourceFallback
	}

	resp, err := d.client.Complete(ctx, &llm.CompletionRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: ambiguitySystemPrompt},
			{Role: "user", Content: ambiguityUserPrompt(travelInfo, params)},
		},
		Temperature: 0.1,
		MaxTokens:   1500,
	})
	if err != nil {
		d.logger.Warn("ambiguity LLM call failed, using fallback", zap.Error(err))
		metrics.RecordFallback("ambiguity", "llm_error")
		return d.fallback(params), SourceFallback
	}
	metrics.RecordLLMCall("ambiguity", "success", resp.Model, float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	items, err := decodeAmbiguities(resp.Content)
	if err != nil {
		d.logger.Warn("ambiguity response not decodable, using fallback", zap.Error(err))
		metrics.RecordFallback("ambiguity", "decode_error")
		return d.fallback(params), SourceFallback
	}

	d.logger.Info("ambiguities detected", zap.Int("count", len(items)))
	return items, SourceLLM
}

// decodeAmbiguities validates each returned item, drops incomplete ones,
// sorts by importance and truncates to the LLM cap.
func decodeAmbiguities(raw string) ([]model.Ambiguity, error) {
	var shaped struct {
		Ambiguities []model.Ambiguity `json:"ambiguities"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &shaped); err != nil {
		return nil, err
	}

	validated := make([]model.Ambiguity, 0, len(shaped.Ambiguities))
	for _, item := range shaped.Ambiguities {
		if item.Category == "" || item.Issue == "" || item.Question == "" || item.Importance == "" {
			continue
		}
		validated = append(validated, item)
	}

	sort.SliceStable(validated, func(i, j int) bool {
		return validated[i].Importance.SeverityRank() < validated[j].Importance.SeverityRank()
	})

	if len(validated) > maxAmbiguitiesLLM {
		validated = validated[:maxAmbiguitiesLLM]
	}
	return validated, nil
}

// fallback evaluates three independent rules against the parameters alone:
// missing dates, missing budget, missing transportation. Rule order is the
// result order; high importance already sorts first.
func (d *Detector) fallback(params model.TripParameters) []model.Ambiguity {
	var items []model.Ambiguity

	if params.StartDate == nil || params.EndDate == nil {
		items = append(items, model.Ambiguity{
			Category:    "dates",
			Issue:       "The travel dates are not clear",
			Question:    "What are your exact departure and return dates?",
			Importance:  model.ImportanceHigh,
			Suggestions: []string{"Use the YYYY-MM-DD format", "e.g. 2024-03-15 to 2024-03-18"},
		})
	}

	if params.Budget == nil {
		items = append(items, model.Ambiguity{
			Category:    "budget",
			Issue:       "No budget information was given",
			Question:    "What is your expected budget per person?",
			Importance:  model.ImportanceMedium,
			Suggestions: []string{"under $500", "around $1,000", "over $2,000"},
		})
	}

	if params.Transportation == nil {
		items = append(items, model.Ambiguity{
			Category:    "transportation",
			Issue:       "Transportation details are missing",
			Question:    "How are you planning to travel (flight, train, ...)?",
			Importance:  model.ImportanceMedium,
			Suggestions: []string{"flight", "train", "bus", "own car"},
		})
	}

	if len(items) > maxAmbiguitiesFallback {
		items = items[:maxAmbiguitiesFallback]
	}
	return items
}
