package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineText(t *testing.T) {
	t.Run("merges raw and extracted text under the document marker", func(t *testing.T) {
		combined := CombineText("Tokyo next week", "Flight OZ102 on 2024-03-15")
		assert.Contains(t, combined, "Tokyo next week")
		assert.Contains(t, combined, documentMarker)
		assert.Contains(t, combined, "Flight OZ102 on 2024-03-15")
	})

	t.Run("returns raw text unchanged when no document text", func(t *testing.T) {
		assert.Equal(t, "Tokyo next week", CombineText("Tokyo next week", ""))
	})

	t.Run("returns document text when raw text is empty", func(t *testing.T) {
		assert.Equal(t, "itinerary attached", CombineText("", "itinerary attached"))
	})

	t.Run("percent-decodes encoded input", func(t *testing.T) {
		combined := CombineText("Tokyo%20trip", "")
		assert.Equal(t, "Tokyo trip", combined)
	})

	t.Run("keeps original text when decoding fails", func(t *testing.T) {
		combined := CombineText("100% fun in Tokyo", "")
		assert.Equal(t, "100% fun in Tokyo", combined)
	})
}
