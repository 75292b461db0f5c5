package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTravelInfo(t *testing.T) {
	assert.NoError(t, ValidateTravelInfo("Tokyo trip, 3 days"))
	assert.NoError(t, ValidateTravelInfo("도쿄 여행 3일"))
	assert.NoError(t, ValidateTravelInfo(strings.Repeat("a", maxTravelInfoLength)))

	assert.Error(t, ValidateTravelInfo(""))
	assert.Error(t, ValidateTravelInfo(strings.Repeat("a", maxTravelInfoLength+1)))
	assert.Error(t, ValidateTravelInfo(string([]byte{0xff, 0xfe})))
}

func TestValidateStyleTag(t *testing.T) {
	assert.NoError(t, ValidateStyleTag("economic"))

	assert.Error(t, ValidateStyleTag(""))
	assert.Error(t, ValidateStyleTag(strings.Repeat("x", 33)))
}
