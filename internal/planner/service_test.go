package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
)

func newFallbackService() *PlanService {
	log := logger.NewNop()
	return NewPlanService(
		NewExtractor(nil, log),
		NewDetector(nil, log),
		NewSynthesizer(nil, log),
		NewRecommender(),
		nil,
		log,
	)
}

func TestCreatePlanFallbackPipeline(t *testing.T) {
	svc := newFallbackService()

	resp, err := svc.CreatePlan(context.Background(), "Tokyo trip, 3 days, shopping", model.StyleEconomic)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.PlanID)
	assert.Equal(t, "Tokyo, Japan", resp.Destination)
	assert.Equal(t, "Tokyo, Japan plan", resp.Title)
	assert.Equal(t, model.StyleEconomic, resp.TravelStyle)
	assert.Contains(t, resp.Summary, "economic")
	assert.Equal(t, fallbackConfidence, resp.ConfidenceScore)

	require.Len(t, resp.DailyPlans, 1)
	require.Len(t, resp.DailyPlans[0].Activities, 4)
	shopping := resp.DailyPlans[0].Activities[3]
	assert.Equal(t, "16:00", shopping.StartTime)
	assert.Equal(t, "shopping", shopping.Category)

	assert.Contains(t, resp.Recommendations, "food")
	assert.Contains(t, resp.Recommendations, "attractions")
	assert.Contains(t, resp.Recommendations, "shopping")

	assert.False(t, resp.CreatedAt.IsZero())
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
}

func TestCreatePlanDegradesSourceWhenSynthesisFallsBack(t *testing.T) {
	log := logger.NewNop()
	// Extraction succeeds over the LLM but synthesis returns prose, so the
	// plan as a whole reports the fallback path.
	extractClient := &fakeClient{content: `{"destination": "Tokyo, Japan", "confidence_score": 0.9}`}
	synthClient := &fakeClient{content: "not json"}
	svc := NewPlanService(
		NewExtractor(extractClient, log),
		NewDetector(nil, log),
		NewSynthesizer(synthClient, log),
		NewRecommender(),
		nil,
		log,
	)

	resp, err := svc.CreatePlan(context.Background(), "Tokyo trip", model.StyleEconomic)
	require.NoError(t, err)
	assert.Equal(t, 0.9, resp.ConfidenceScore)
	require.Len(t, resp.DailyPlans, 1)
	assert.Equal(t, "Tokyo, Japan day one", resp.DailyPlans[0].DayTitle)
}

func TestAssembleRoundTrip(t *testing.T) {
	svc := newFallbackService()
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	params := model.TripParameters{
		Destination:     strPtr("Paris, France"),
		StartDate:       strPtr("2024-06-01"),
		EndDate:         strPtr("2024-06-05"),
		Duration:        intPtr(5),
		ConfidenceScore: 0.7,
	}

	resp := svc.assemble("plan-1", params, model.StyleLuxury, nil, nil, 1.25)
	assert.Equal(t, "plan-1", resp.PlanID)
	assert.Equal(t, "Paris, France", resp.Destination)
	assert.Equal(t, "2024-06-01", *resp.StartDate)
	assert.Equal(t, "2024-06-05", *resp.EndDate)
	assert.Equal(t, 5, *resp.Duration)
	assert.Equal(t, 0.7, resp.ConfidenceScore)
	assert.Equal(t, 1.25, resp.ProcessingTime)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), resp.CreatedAt)
}

func TestAssembleUnknownDestinationPlaceholder(t *testing.T) {
	svc := newFallbackService()

	resp := svc.assemble("plan-2", model.TripParameters{}, model.StyleEconomic, nil, nil, 0)
	assert.Equal(t, UnknownDestination, resp.Destination)
	assert.Equal(t, UnknownDestination+" plan", resp.Title)
}

func TestDetectAmbiguitiesReport(t *testing.T) {
	svc := newFallbackService()

	report, err := svc.DetectAmbiguities(context.Background(), "Tokyo trip", model.StyleEconomic)
	require.NoError(t, err)

	assert.True(t, report.HasAmbiguities)
	require.Len(t, report.Ambiguities, 3)
	assert.Equal(t, "dates", report.Ambiguities[0].Category)
	require.NotNil(t, report.ParsedInfo.Destination)
	assert.Equal(t, "Tokyo, Japan", *report.ParsedInfo.Destination)
	assert.Equal(t, fallbackConfidence, report.ConfidenceScore)
}

func TestDetectAmbiguitiesEmptyItemsNotNil(t *testing.T) {
	log := logger.NewNop()
	// Both the extraction and the detection call hit the same canned client.
	// The payload is a valid empty ambiguity list and decodes as an empty
	// parameter object, so the detector reports nothing.
	client := &fakeClient{content: `{"ambiguities": []}`}
	svc := NewPlanService(
		NewExtractor(client, log),
		NewDetector(client, log),
		NewSynthesizer(nil, log),
		NewRecommender(),
		nil,
		log,
	)

	report, err := svc.DetectAmbiguities(context.Background(), "a fully specified trip", model.StyleEconomic)
	require.NoError(t, err)

	assert.False(t, report.HasAmbiguities)
	assert.NotNil(t, report.Ambiguities)
	assert.Empty(t, report.Ambiguities)
}

func TestClarify(t *testing.T) {
	t.Run("rejects an unknown style", func(t *testing.T) {
		svc := newFallbackService()

		_, err := svc.Clarify(context.Background(), model.ClarifyRequest{
			OriginalInfo: "Tokyo trip",
			TravelStyle:  "extravagant",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStyle)
	})

	t.Run("reruns the pipeline on the augmented narrative", func(t *testing.T) {
		log := logger.NewNop()
		client := &fakeClient{content: `{"destination": "Tokyo, Japan", "confidence_score": 0.8}`}
		svc := NewPlanService(
			NewExtractor(client, log),
			NewDetector(nil, log),
			NewSynthesizer(nil, log),
			NewRecommender(),
			nil,
			log,
		)

		resp, err := svc.Clarify(context.Background(), model.ClarifyRequest{
			OriginalInfo: "Tokyo trip",
			TravelStyle:  "economic",
			Answers: []model.ClarificationAnswer{
				{Question: "dates?", Answer: "March 1-5"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Tokyo, Japan", resp.Destination)

		require.NotEmpty(t, client.requests)
		prompt := client.requests[0].Messages[1].Content
		assert.Contains(t, prompt, "Tokyo trip")
		assert.Contains(t, prompt, "Q: dates?\nA: March 1-5")
	})
}

func TestBuildClarifiedNarrative(t *testing.T) {
	augmented := BuildClarifiedNarrative("Tokyo trip", []model.ClarificationAnswer{
		{Question: "dates?", Answer: "March 1-5"},
		{Question: "budget?", Answer: "$1,000"},
	})

	assert.Contains(t, augmented, "Tokyo trip")
	assert.Contains(t, augmented, "[additional information]")
	assert.Contains(t, augmented, "Q: dates?\nA: March 1-5")
	assert.Contains(t, augmented, "Q: budget?\nA: $1,000")
}
