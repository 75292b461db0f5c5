// Package planner implements the travel plan generation pipeline:
// narrative normalization, trip-parameter extraction, ambiguity detection
// and itinerary synthesis, each with an LLM path and a deterministic
// fallback path.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/events"
	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
	"github.com/onetrip/travel-planner/pkg/metrics"
)

// ErrInvalidStyle is returned when a caller-supplied style tag is not one of
// the supported styles.
var ErrInvalidStyle = errors.New("invalid travel style")

// PlanService orchestrates the pipeline stages into full plan responses.
type PlanService struct {
	extractor   *Extractor
	detector    *Detector
	synthesizer *Synthesizer
	recommender *Recommender
	publisher   *events.Publisher
	logger      *logger.Logger
	now         func() time.Time
}

// NewPlanService creates the plan service. publisher may be nil.
func NewPlanService(
	extractor *Extractor,
	detector *Detector,
	synthesizer *Synthesizer,
	recommender *Recommender,
	publisher *events.Publisher,
	log *logger.Logger,
) *PlanService {
	return &PlanService{
		extractor:   extractor,
		detector:    detector,
		synthesizer: synthesizer,
		recommender: recommender,
		publisher:   publisher,
		logger:      log,
		now:         time.Now,
	}
}

// CreatePlan runs the full pipeline on a combined narrative and assembles
// the response record.
func (s *PlanService) CreatePlan(ctx context.Context, travelInfo string, style model.TravelStyle) (*model.TravelPlanResponse, error) {
	start := s.now()
	planID := uuid.New().String()
	log := s.logger.WithPlan(planID, string(style))

	log.Info("plan generation started", zap.Int("text_length", len(travelInfo)))

	params, source := s.extractor.Extract(ctx, travelInfo, style)

	dayPlans, planSource := s.synthesizer.Synthesize(ctx, params, style)
	if planSource == SourceFallback {
		source = SourceFallback
	}

	recommendations := s.recommender.Recommend(params, style)

	resp := s.assemble(planID, params, style, dayPlans, recommendations, s.now().Sub(start).Seconds())

	metrics.RecordPlan(string(style), string(source), resp.ProcessingTime)
	if err := s.publisher.PublishPlanCreated(ctx, &events.PlanCreatedEvent{
		PlanID:          resp.PlanID,
		TravelStyle:     string(style),
		Destination:     resp.Destination,
		PipelinePath:    string(source),
		Days:            len(resp.DailyPlans),
		ConfidenceScore: resp.ConfidenceScore,
		ProcessingTime:  resp.ProcessingTime,
		CreatedAt:       resp.CreatedAt,
	}); err != nil {
		log.Warn("failed to publish plan event", zap.Error(err))
	}

	log.Info("plan generation finished",
		zap.Float64("processing_time", resp.ProcessingTime),
		zap.String("pipeline_path", string(source)),
		zap.Int("days", len(resp.DailyPlans)))

	return resp, nil
}

// assemble stamps identity, timestamps and derived summary metadata onto the
// pipeline outputs. Pure assembly, no decision logic.
func (s *PlanService) assemble(
	planID string,
	params model.TripParameters,
	style model.TravelStyle,
	dayPlans []model.DayPlan,
	recommendations map[string][]model.Recommendation,
	elapsedSeconds float64,
) *model.TravelPlanResponse {
	destination := UnknownDestination
	if params.Destination != nil && *params.Destination != "" {
		destination = *params.Destination
	}

	return &model.TravelPlanResponse{
		PlanID:          planID,
		Title:           fmt.Sprintf("%s plan", destination),
		TravelStyle:     style,
		Summary:         fmt.Sprintf("A personalized travel plan in the %s style.", style),
		Destination:     destination,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
		Duration:        params.Duration,
		DailyPlans:      dayPlans,
		Recommendations: recommendations,
		CreatedAt:       s.now().UTC(),
		ProcessingTime:  elapsedSeconds,
		ConfidenceScore: params.ConfidenceScore,
	}
}

// DetectAmbiguities extracts parameters from the narrative and reports the
// gaps that need clarification.
func (s *PlanService) DetectAmbiguities(ctx context.Context, travelInfo string, style model.TravelStyle) (*model.AmbiguityReport, error) {
	params, _ := s.extractor.Extract(ctx, travelInfo, style)
	items, source := s.detector.Detect(ctx, travelInfo, params)

	metrics.AmbiguitiesDetected.WithLabelValues(string(source)).Observe(float64(len(items)))

	destination := UnknownDestination
	if params.Destination != nil && *params.Destination != "" {
		destination = *params.Destination
	}
	if err := s.publisher.PublishAmbiguitiesDetected(ctx, &events.AmbiguitiesDetectedEvent{
		TravelStyle:     string(style),
		Destination:     destination,
		PipelinePath:    string(source),
		AmbiguityCount:  len(items),
		ConfidenceScore: params.ConfidenceScore,
		CreatedAt:       s.now().UTC(),
	}); err != nil {
		s.logger.Warn("failed to publish ambiguity event", zap.Error(err))
	}

	if items == nil {
		items = []model.Ambiguity{}
	}
	return &model.AmbiguityReport{
		Ambiguities:     items,
		ParsedInfo:      params,
		HasAmbiguities:  len(items) > 0,
		ConfidenceScore: params.ConfidenceScore,
	}, nil
}

// Clarify augments the original narrative with answered questions and reruns
// the full pipeline on the result.
func (s *PlanService) Clarify(ctx context.Context, req model.ClarifyRequest) (*model.TravelPlanResponse, error) {
	style, ok := model.ParseTravelStyle(req.TravelStyle)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStyle, req.TravelStyle)
	}

	augmented := BuildClarifiedNarrative(req.OriginalInfo, req.Answers)
	return s.CreatePlan(ctx, augmented, style)
}

// BuildClarifiedNarrative appends each answered question to the original
// narrative as a labeled Q/A block.
func BuildClarifiedNarrative(original string, answers []model.ClarificationAnswer) string {
	var b strings.Builder
	b.WriteString(original)
	b.WriteString("\n\n[additional information]\n")
	for _, qa := range answers {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", qa.Question, qa.Answer)
	}
	return b.String()
}
