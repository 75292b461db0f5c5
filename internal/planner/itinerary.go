package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/onetrip/travel-planner/internal/llm"
	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
	"github.com/onetrip/travel-planner/pkg/metrics"
)

// Synthesizer turns trip parameters into an ordered day-by-day itinerary.
type Synthesizer struct {
	client llm.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewSynthesizer creates a synthesizer. client may be nil.
func NewSynthesizer(client llm.Client, log *logger.Logger) *Synthesizer {
	return &Synthesizer{client: client, logger: log, now: time.Now}
}

// Synthesize produces day plans for the trip. It never fails outward: any
// LLM or decode error degrades to the deterministic single-day fallback.
func (s *Synthesizer) Synthesize(ctx context.Context, params model.TripParameters, style model.TravelStyle) ([]model.DayPlan, Source) {
	if s.client == nil {
		metrics.RecordFallback("itinerary", "no_client")
		return s.fallback(params), SourceFallback
	}

	resp, err := s.client.Complete(ctx, &llm.CompletionRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: synthesisSystemPrompt(style)},
			{Role: "user", Content: synthesisUserPrompt(params)},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		s.logger.Warn("itinerary LLM call failed, using fallback", zap.Error(err))
		metrics.RecordFallback("itinerary", "llm_error")
		return s.fallback(params), SourceFallback
	}
	metrics.RecordLLMCall("itinerary", "success", resp.Model, float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	plans, err := decodeDayPlans(resp.Content)
	if err != nil {
		s.logger.Warn("itinerary response not decodable, using fallback", zap.Error(err))
		metrics.RecordFallback("itinerary", "decode_error")
		return s.fallback(params), SourceFallback
	}

	s.logger.Info("itinerary synthesized", zap.Int("days", len(plans)))
	return plans, SourceLLM
}

// decodeDayPlans is the lenient decode of the synthesis contract. Partially
// malformed activities get positional ids and generic placeholders instead
// of failing the conversion.
func decodeDayPlans(raw string) ([]model.DayPlan, error) {
	var shaped struct {
		DailyPlans []struct {
			Date       string `json:"date"`
			DayTitle   string `json:"day_title"`
			Activities []struct {
				ID          string `json:"id"`
				Title       string `json:"title"`
				Description string `json:"description"`
				Location    struct {
					Name    string `json:"name"`
					Address string `json:"address"`
				} `json:"location"`
				StartTime string `json:"start_time"`
				Category  string `json:"category"`
			} `json:"activities"`
		} `json:"daily_plans"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &shaped); err != nil {
		return nil, err
	}

	plans := make([]model.DayPlan, 0, len(shaped.DailyPlans))
	for _, day := range shaped.DailyPlans {
		activities := make([]model.Activity, 0, len(day.Activities))
		for i, act := range day.Activities {
			id := act.ID
			if id == "" {
				id = fmt.Sprintf("activity_%d", i+1)
			}
			title := act.Title
			if title == "" {
				title = "Activity"
			}
			locName := act.Location.Name
			if locName == "" {
				locName = "Location"
			}
			category := act.Category
			if category == "" {
				category = "general"
			}
			activities = append(activities, model.Activity{
				ID:          id,
				Title:       title,
				Description: act.Description,
				Location:    model.Location{Name: locName, Address: act.Location.Address},
				StartTime:   act.StartTime,
				Category:    category,
			})
		}

		date := day.Date
		if date == "" {
			date = "2024-01-01"
		}
		title := day.DayTitle
		if title == "" {
			title = "Travel day"
		}
		plans = append(plans, model.DayPlan{
			Date:       date,
			DayTitle:   title,
			Activities: activities,
		})
	}
	return plans, nil
}

// waypoint is one canonical fallback stop for a known destination.
type waypoint struct {
	title       string
	description string
	name        string
	address     string
	time        string
	category    string
}

// destinationWaypoints holds up to three canonical stops (arrival point,
// cultural landmark, scenic or shopping landmark) for well-known
// destinations, keyed by the extractor's canonical labels.
var destinationWaypoints = map[string][]waypoint{
	"Tokyo, Japan": {
		{"Arrive at Tokyo Station", "Arrive at Tokyo Station and start the trip", "Tokyo Station", "1 Chome Marunouchi, Chiyoda City, Tokyo, Japan", "10:00", "transport"},
		{"Visit Senso-ji Temple", "Tokyo's oldest temple and the landmark of Asakusa", "Senso-ji Temple", "2-3-1 Asakusa, Taito City, Tokyo, Japan", "14:00", "sightseeing"},
		{"Tokyo Skytree", "Tokyo's landmark tower with panoramic observation decks", "Tokyo Skytree", "1-1-2 Oshiage, Sumida City, Tokyo, Japan", "16:30", "sightseeing"},
	},
	"Seoul, South Korea": {
		{"Arrive at Incheon Airport", "Land at Incheon International Airport and transfer into Seoul", "Incheon International Airport", "272 Gonghang-ro, Jung-gu, Incheon, South Korea", "09:00", "transport"},
		{"Tour Gyeongbokgung Palace", "The main royal palace of the Joseon dynasty", "Gyeongbokgung Palace", "161 Sajik-ro, Jongno-gu, Seoul, South Korea", "14:00", "culture"},
		{"Myeongdong shopping street", "Seoul's signature shopping district, packed with shops and street food", "Myeongdong", "Myeongdong-gil, Jung-gu, Seoul, South Korea", "17:00", "shopping"},
	},
	"Paris, France": {
		{"Arrive at Charles de Gaulle Airport", "Land at Paris Charles de Gaulle Airport", "Charles de Gaulle Airport", "Roissy-en-France, France", "10:00", "transport"},
		{"Visit the Eiffel Tower", "The symbol of Paris and its observation decks", "Eiffel Tower", "Champ de Mars, 5 Avenue Anatole France, 75007 Paris, France", "15:00", "sightseeing"},
		{"Louvre Museum", "The world's largest museum, home of the Mona Lisa", "Louvre Museum", "Rue de Rivoli, 75001 Paris, France", "17:30", "culture"},
	},
}

// genericWaypoints builds three placeholder stops for destinations without
// a canonical table, deriving synthetic addresses from the destination name.
func genericWaypoints(destination string) []waypoint {
	return []waypoint{
		{fmt.Sprintf("Arrive in %s", destination), fmt.Sprintf("Arrive in %s and start the trip", destination), fmt.Sprintf("%s city center", destination), destination, "10:00", "arrival"},
		{"Visit a major attraction", fmt.Sprintf("Visit one of the signature sights of %s", destination), "Major attraction", fmt.Sprintf("%s sightseeing area", destination), "14:00", "sightseeing"},
		{"Local food experience", "Dinner at a well-known local restaurant", "Local restaurant", fmt.Sprintf("%s food street", destination), "18:00", "food"},
	}
}

// fallback produces exactly one day plan from the canonical waypoint table,
// plus a shopping add-on when the interests include a shopping tag.
func (s *Synthesizer) fallback(params model.TripParameters) []model.DayPlan {
	destination := UnknownDestination
	if params.Destination != nil && *params.Destination != "" {
		destination = *params.Destination
	}

	stops, ok := destinationWaypoints[destination]
	if !ok {
		stops = genericWaypoints(destination)
	}
	if len(stops) > 3 {
		stops = stops[:3]
	}

	activities := make([]model.Activity, 0, len(stops)+1)
	for i, stop := range stops {
		activities = append(activities, model.Activity{
			ID:          fmt.Sprintf("activity_%d", i+1),
			Title:       stop.title,
			Description: stop.description,
			Location:    model.Location{Name: stop.name, Address: stop.address},
			StartTime:   stop.time,
			Category:    stop.category,
		})
	}

	if hasShoppingInterest(params.Interests) {
		activities = append(activities, model.Activity{
			ID:          fmt.Sprintf("activity_%d", len(activities)+1),
			Title:       "Shopping tour",
			Description: "Visit the best local shopping spots",
			Location:    model.Location{Name: "Shopping center", Address: fmt.Sprintf("%s shopping district", destination)},
			StartTime:   "16:00",
			Category:    "shopping",
		})
	}

	date := ""
	if params.StartDate != nil && *params.StartDate != "" {
		date = *params.StartDate
	} else {
		date = s.now().UTC().Format("2006-01-02")
	}

	return []model.DayPlan{{
		Date:       date,
		DayTitle:   fmt.Sprintf("%s day one", destination),
		Activities: activities,
	}}
}

func hasShoppingInterest(interests []string) bool {
	for _, tag := range interests {
		if strings.Contains(strings.ToLower(tag), "shopping") || strings.Contains(tag, "쇼핑") {
			return true
		}
	}
	return false
}
