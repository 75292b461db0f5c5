package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrip/travel-planner/internal/model"
	"github.com/onetrip/travel-planner/pkg/logger"
)

func TestSynthesizeFallbackKnownDestination(t *testing.T) {
	s := NewSynthesizer(nil, logger.NewNop())
	ctx := context.Background()

	t.Run("tokyo with shopping interest gets four activities", func(t *testing.T) {
		params := model.TripParameters{
			Destination: strPtr("Tokyo, Japan"),
			Interests:   []string{"shopping"},
			StartDate:   strPtr("2024-03-15"),
		}

		plans, source := s.Synthesize(ctx, params, model.StyleEconomic)
		assert.Equal(t, SourceFallback, source)
		require.Len(t, plans, 1)

		day := plans[0]
		assert.Equal(t, "2024-03-15", day.Date)
		assert.Equal(t, "Tokyo, Japan day one", day.DayTitle)
		require.Len(t, day.Activities, 4)

		assert.Equal(t, "Tokyo Station", day.Activities[0].Location.Name)
		assert.Equal(t, "10:00", day.Activities[0].StartTime)
		assert.Equal(t, "Senso-ji Temple", day.Activities[1].Location.Name)
		assert.Equal(t, "Tokyo Skytree", day.Activities[2].Location.Name)

		shopping := day.Activities[3]
		assert.Equal(t, "activity_4", shopping.ID)
		assert.Equal(t, "16:00", shopping.StartTime)
		assert.Equal(t, "shopping", shopping.Category)
	})

	t.Run("no shopping add-on without the shopping tag", func(t *testing.T) {
		params := model.TripParameters{
			Destination: strPtr("Seoul, South Korea"),
			Interests:   []string{"culture"},
			StartDate:   strPtr("2024-05-01"),
		}

		plans, _ := s.Synthesize(ctx, params, model.StyleCultural)
		require.Len(t, plans, 1)
		assert.Len(t, plans[0].Activities, 3)
	})

	t.Run("activity ids are positional", func(t *testing.T) {
		params := model.TripParameters{
			Destination: strPtr("Paris, France"),
			StartDate:   strPtr("2024-06-01"),
		}

		plans, _ := s.Synthesize(ctx, params, model.StyleLuxury)
		for i, act := range plans[0].Activities {
			assert.Equal(t, fmt.Sprintf("activity_%d", i+1), act.ID)
		}
	})
}

func TestSynthesizeFallbackUnknownDestination(t *testing.T) {
	s := NewSynthesizer(nil, logger.NewNop())

	params := model.TripParameters{
		Destination: strPtr("Reykjavik, Iceland"),
		StartDate:   strPtr("2024-07-01"),
	}

	plans, _ := s.Synthesize(context.Background(), params, model.StyleAdventure)
	require.Len(t, plans, 1)
	require.Len(t, plans[0].Activities, 3)

	assert.Equal(t, "Arrive in Reykjavik, Iceland", plans[0].Activities[0].Title)
	assert.Contains(t, plans[0].Activities[1].Title, "attraction")
	assert.Contains(t, plans[0].Activities[2].Description, "restaurant")
	assert.Contains(t, plans[0].Activities[0].Location.Address, "Reykjavik, Iceland")
}

func TestSynthesizeFallbackIdempotent(t *testing.T) {
	s := NewSynthesizer(nil, logger.NewNop())
	params := model.TripParameters{
		Destination: strPtr("Tokyo, Japan"),
		Interests:   []string{"shopping", "food"},
		StartDate:   strPtr("2024-03-15"),
	}

	first, _ := s.Synthesize(context.Background(), params, model.StyleEconomic)
	second, _ := s.Synthesize(context.Background(), params, model.StyleEconomic)
	assert.Equal(t, first, second)
}

func TestSynthesizeFallbackDatesDefaultToToday(t *testing.T) {
	s := NewSynthesizer(nil, logger.NewNop())
	s.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	plans, _ := s.Synthesize(context.Background(), model.TripParameters{}, model.StyleEconomic)
	require.Len(t, plans, 1)
	assert.Equal(t, "2024-03-15", plans[0].Date)
	assert.Contains(t, plans[0].DayTitle, UnknownDestination)
}

func TestSynthesizeLLMPath(t *testing.T) {
	ctx := context.Background()

	t.Run("maps a complete response", func(t *testing.T) {
		client := &fakeClient{content: `{"daily_plans": [
			{
				"date": "2024-03-15",
				"day_title": "Shibuya and Shinjuku",
				"activities": [
					{
						"id": "activity_1",
						"title": "Shibuya Crossing",
						"description": "See the famous scramble",
						"location": {"name": "Shibuya Crossing", "address": "Shibuya, Tokyo"},
						"start_time": "09:30",
						"category": "sightseeing"
					}
				]
			}
		]}`}
		s := NewSynthesizer(client, logger.NewNop())

		plans, source := s.Synthesize(ctx, model.TripParameters{}, model.StyleEconomic)
		assert.Equal(t, SourceLLM, source)
		require.Len(t, plans, 1)
		assert.Equal(t, "Shibuya and Shinjuku", plans[0].DayTitle)
		require.Len(t, plans[0].Activities, 1)
		assert.Equal(t, "Shibuya Crossing", plans[0].Activities[0].Title)
		assert.Equal(t, "09:30", plans[0].Activities[0].StartTime)
	})

	t.Run("fills placeholders for partially malformed activities", func(t *testing.T) {
		client := &fakeClient{content: `{"daily_plans": [
			{
				"date": "2024-03-15",
				"day_title": "Day 1",
				"activities": [
					{"description": "mystery stop"},
					{"title": "Named stop"}
				]
			}
		]}`}
		s := NewSynthesizer(client, logger.NewNop())

		plans, source := s.Synthesize(ctx, model.TripParameters{}, model.StyleEconomic)
		assert.Equal(t, SourceLLM, source)
		require.Len(t, plans[0].Activities, 2)

		first := plans[0].Activities[0]
		assert.Equal(t, "activity_1", first.ID)
		assert.Equal(t, "Activity", first.Title)
		assert.Equal(t, "Location", first.Location.Name)
		assert.Equal(t, "general", first.Category)

		second := plans[0].Activities[1]
		assert.Equal(t, "activity_2", second.ID)
		assert.Equal(t, "Named stop", second.Title)
	})

	t.Run("sends the style guideline at creative temperature", func(t *testing.T) {
		client := &fakeClient{content: `{"daily_plans": []}`}
		s := NewSynthesizer(client, logger.NewNop())

		s.Synthesize(ctx, model.TripParameters{}, model.StyleAdventure)
		require.Len(t, client.requests, 1)
		req := client.requests[0]
		assert.Equal(t, 0.7, req.Temperature)
		assert.Contains(t, req.Messages[0].Content, StyleGuideline(model.StyleAdventure))
	})

	t.Run("degrades to fallback on malformed output", func(t *testing.T) {
		client := &fakeClient{content: "Day 1: arrive. Day 2: sights."}
		s := NewSynthesizer(client, logger.NewNop())

		params := model.TripParameters{Destination: strPtr("Tokyo, Japan"), StartDate: strPtr("2024-03-15")}
		plans, source := s.Synthesize(ctx, params, model.StyleEconomic)
		assert.Equal(t, SourceFallback, source)
		require.Len(t, plans, 1)
		assert.Equal(t, "Tokyo, Japan day one", plans[0].DayTitle)
	})

	t.Run("degrades to fallback on upstream error", func(t *testing.T) {
		client := &fakeClient{err: errUpstream}
		s := NewSynthesizer(client, logger.NewNop())

		_, source := s.Synthesize(ctx, model.TripParameters{}, model.StyleEconomic)
		assert.Equal(t, SourceFallback, source)
	})
}
