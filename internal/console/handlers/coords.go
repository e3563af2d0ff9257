package handlers

import (
	"strconv"
	"strings"
)

// Coordinate validation messages, shared by tp and namedpos add.
const (
	msgCoordCount  = "Position must be three coordinates (x y z)"
	msgCoordFormat = "Position coordinates must be numbers or use tilde notation (~)"
)

// ParseCoordinates validates a coordinate expression: commas are normalized
// to spaces, empty tokens dropped, and exactly three tokens are required.
// Each token must be a float literal, the literal "~", or "~" followed by a
// signed or unsigned float (relative offset notation). Violations are hard
// rejections.
//
// Postcondition: Returns exactly three tokens, or a *ValidationError.
func ParseCoordinates(raw string) ([]string, error) {
	cleaned := strings.ReplaceAll(raw, ",", " ")
	tokens := strings.Fields(cleaned)
	if len(tokens) != 3 {
		return nil, &ValidationError{Message: msgCoordCount}
	}
	for _, tok := range tokens {
		if !validCoordinate(tok) {
			return nil, &ValidationError{Message: msgCoordFormat}
		}
	}
	return tokens, nil
}

// validCoordinate reports whether a single token is an absolute or relative
// coordinate.
func validCoordinate(tok string) bool {
	if tok == "~" {
		return true
	}
	if rest, ok := strings.CutPrefix(tok, "~"); ok {
		_, err := strconv.ParseFloat(rest, 64)
		return err == nil
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}
