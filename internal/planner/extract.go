package planner

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/llm"
	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
	"github.com/onetrip/travel-planner/pkg/metrics"
)

// Source tells which branch of a pipeline stage produced a result.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Confidence defaults per extraction branch.
const (
	llmConfidence      = 0.7
	fallbackConfidence = 0.3
)

// UnknownDestination is the placeholder used when the fallback extractor
// finds no destination keyword.
const UnknownDestination = "Unknown destination"

// GeneralInterest is the placeholder interest tag when nothing matched.
const GeneralInterest = "general sightseeing"

// Extractor turns free-form narrative into structured trip parameters.
// With no LLM client configured it runs purely on keyword heuristics.
type Extractor struct {
	client llm.Client
	logger *logger.Logger
}

// NewExtractor creates an extractor. client may be nil.
func NewExtractor(client llm.Client, log *logger.Logger) *Extractor {
	return &Extractor{client: client, logger: log}
}

// Extract parses travel narrative into trip parameters. It never fails
// outward: any LLM or decode error degrades to the keyword fallback.
func (e *Extractor) Extract(ctx context.Context, travelInfo string, style model.TravelStyle) (model.TripParameters, Source) {
	if e.client == nil {
		metrics.RecordFallback("extract", "no_client")
		return e.fallback(travelInfo), SourceFallback
	}

	resp, err := e.client.Complete(ctx, &llm.CompletionRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: extractionSystemPrompt(style)},
			{Role: "user", Content: extractionUserPrompt(travelInfo)},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	})
	if err != nil {
		e.logger.Warn("extraction LLM call failed, using fallback", zap.Error(err))
		metrics.RecordFallback("extract", "llm_error")
		return e.fallback(travelInfo), SourceFallback
	}
	metrics.RecordLLMCall("extract", "success", resp.Model, float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	params, err := decodeTripParameters(resp.Content)
	if err != nil {
		e.logger.Warn("extraction response not decodable, using fallback",
			zap.Error(err), zap.Int("response_len", len(resp.Content)))
		metrics.RecordFallback("extract", "decode_error")
		return e.fallback(travelInfo), SourceFallback
	}

	e.logger.Info("trip parameters extracted",
		zap.Stringp("destination", params.Destination),
		zap.Float64("confidence", params.ConfidenceScore))
	return params, SourceLLM
}

// decodeTripParameters is the lenient decode of the extraction contract:
// absent fields stay nil, a non-array interests value collapses to an empty
// slice, and a missing confidence score defaults to 0.7.
func decodeTripParameters(raw string) (model.TripParameters, error) {
	var shaped struct {
		Destination         *string         `json:"destination"`
		StartDate           *string         `json:"start_date"`
		EndDate             *string         `json:"end_date"`
		Duration            json.RawMessage `json:"duration"`
		Budget              *string         `json:"budget"`
		Interests           json.RawMessage `json:"interests"`
		Transportation      *string         `json:"transportation"`
		Accommodation       *string         `json:"accommodation"`
		SpecialRequirements *string         `json:"special_requirements"`
		ConfidenceScore     *float64        `json:"confidence_score"`
	}

	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &shaped); err != nil {
		return model.TripParameters{}, err
	}

	params := model.TripParameters{
		Destination:         shaped.Destination,
		StartDate:           shaped.StartDate,
		EndDate:             shaped.EndDate,
		Duration:            decodeLenientInt(shaped.Duration),
		Budget:              shaped.Budget,
		Interests:           []string{},
		Transportation:      shaped.Transportation,
		Accommodation:       shaped.Accommodation,
		SpecialRequirements: shaped.SpecialRequirements,
		ConfidenceScore:     llmConfidence,
	}

	var interests []string
	if err := json.Unmarshal(shaped.Interests, &interests); err == nil {
		params.Interests = interests
	}
	if shaped.ConfidenceScore != nil {
		params.ConfidenceScore = *shaped.ConfidenceScore
	}
	return params, nil
}

// decodeLenientInt accepts a JSON number or a numeric string; anything else
// is treated as absent.
func decodeLenientInt(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

// stripCodeFences removes a surrounding markdown code fence that chat models
// sometimes wrap JSON output in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// destinationKeywords maps narrative keywords to canonical destination
// labels. Scan order matters: first match wins. Korean keywords cover the
// most common inputs the original product saw.
var destinationKeywords = []struct {
	keyword     string
	destination string
}{
	{"tokyo", "Tokyo, Japan"},
	{"도쿄", "Tokyo, Japan"},
	{"동경", "Tokyo, Japan"},
	{"하네다", "Tokyo, Japan"},
	{"osaka", "Osaka, Japan"},
	{"오사카", "Osaka, Japan"},
	{"kyoto", "Kyoto, Japan"},
	{"교토", "Kyoto, Japan"},
	{"seoul", "Seoul, South Korea"},
	{"서울", "Seoul, South Korea"},
	{"busan", "Busan, South Korea"},
	{"부산", "Busan, South Korea"},
	{"jeju", "Jeju, South Korea"},
	{"제주", "Jeju, South Korea"},
	{"paris", "Paris, France"},
	{"파리", "Paris, France"},
	{"london", "London, United Kingdom"},
	{"런던", "London, United Kingdom"},
	{"new york", "New York, USA"},
	{"뉴욕", "New York, USA"},
	{"bangkok", "Bangkok, Thailand"},
	{"방콕", "Bangkok, Thailand"},
	{"singapore", "Singapore"},
	{"싱가포르", "Singapore"},
	{"싱가폴", "Singapore"},
	{"hong kong", "Hong Kong"},
	{"홍콩", "Hong Kong"},
	{"japan", "Japan"},
	{"일본", "Japan"},
	{"korea", "South Korea"},
	{"한국", "South Korea"},
	{"france", "France"},
	{"프랑스", "France"},
	{"thailand", "Thailand"},
	{"태국", "Thailand"},
}

// interestKeywords maps interest tags to trigger keywords.
var interestKeywords = []struct {
	tag      string
	keywords []string
}{
	{"food", []string{"food", "restaurant", "dining", "eat", "맛집", "음식", "식당", "레스토랑"}},
	{"shopping", []string{"shopping", "mall", "market", "쇼핑", "구매", "쇼핑몰", "시장"}},
	{"culture", []string{"culture", "museum", "gallery", "temple", "heritage", "문화", "박물관", "미술관", "유적"}},
	{"nature", []string{"nature", "mountain", "beach", "park", "hiking", "자연", "산", "바다", "공원"}},
	{"activities", []string{"activity", "activities", "adventure", "sports", "액티비티", "체험", "스포츠"}},
}

// fallback is the deterministic, network-free extraction path. A single
// case-insensitive scan resolves the destination; interest groups are
// evaluated independently. Everything it cannot infer stays nil.
func (e *Extractor) fallback(travelInfo string) model.TripParameters {
	if decoded, err := url.QueryUnescape(travelInfo); err == nil && decoded != travelInfo {
		travelInfo = decoded
	}
	lowered := strings.ToLower(travelInfo)

	destination := UnknownDestination
	for _, entry := range destinationKeywords {
		if strings.Contains(lowered, entry.keyword) {
			destination = entry.destination
			break
		}
	}

	var interests []string
	for _, group := range interestKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lowered, kw) {
				interests = append(interests, group.tag)
				break
			}
		}
	}
	if len(interests) == 0 {
		interests = []string{GeneralInterest}
	}

	e.logger.Info("fallback extraction used",
		zap.String("destination", destination),
		zap.Strings("interests", interests))

	return model.TripParameters{
		Destination:     &destination,
		Interests:       interests,
		ConfidenceScore: fallbackConfidence,
	}
}
