package middleware

import (
	"errors"
	"unicode/utf8"
)

// maxTravelInfoLength bounds the free-form travel text (matches the request
// contract of the analyze endpoints).
const maxTravelInfoLength = 10000

// ValidateTravelInfo validates free-form travel narrative input.
func ValidateTravelInfo(text string) error {
	if len(text) == 0 {
		return errors.New("travel_info cannot be empty")
	}
	if len(text) > maxTravelInfoLength {
		return errors.New("travel_info exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("travel_info must be valid UTF-8")
	}
	return nil
}

// ValidateStyleTag validates the raw style tag shape before enum parsing.
func ValidateStyleTag(style string) error {
	if len(style) == 0 {
		return errors.New("travel_style cannot be empty")
	}
	if len(style) > 32 {
		return errors.New("travel_style exceeds maximum length")
	}
	return nil
}
