package planner

import (
	"github.com/onetrip/travel-planner/internal/model"
)

// Recommender produces category-keyed supplementary points of interest.
//
// The current implementation returns a static table regardless of input.
// It exists so the response shape (category -> ordered list) is stable for
// the real recommendation engine that will replace it.
type Recommender struct{}

// NewRecommender creates a recommender.
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend returns supplementary recommendations keyed by category.
func (r *Recommender) Recommend(params model.TripParameters, style model.TravelStyle) map[string][]model.Recommendation {
	return map[string][]model.Recommendation{
		"food": {
			{
				ID:          "restaurant_1",
				Title:       "Sukiyabashi Jiro",
				Description: "Three-Michelin-star sushi restaurant",
				Category:    "japanese",
				Location:    model.Location{Name: "Sukiyabashi Jiro", Address: "Ginza, Chuo City, Tokyo, Japan"},
			},
		},
		"attractions": {
			{
				ID:          "attraction_1",
				Title:       "Senso-ji Temple",
				Description: "Tokyo's oldest temple",
				Category:    "heritage",
				Location:    model.Location{Name: "Senso-ji", Address: "Asakusa, Taito City, Tokyo, Japan"},
			},
		},
		"shopping": {
			{
				ID:          "shopping_1",
				Title:       "Shibuya 109",
				Description: "The mecca of young fashion",
				Category:    "mall",
				Location:    model.Location{Name: "Shibuya 109", Address: "Shibuya, Tokyo, Japan"},
			},
		},
	}
}
