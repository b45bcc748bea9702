// Package format decides conditional text colors for score cells from
// caller-configured threshold rules.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aerissecure/deckgen/table"
)

// Color is a 6-digit RGB hex string without the leading "#", e.g.
// "FFD700". The zero value means unstyled.
type Color string

// Unstyled is returned when no rule applies to a cell.
const Unstyled Color = ""

// ParseColor normalizes a configured color: a leading "#" is stripped
// and an 8-digit ARGB value (as stored in OOXML files) loses its alpha
// byte.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return Unstyled, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return Unstyled, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(strings.ToUpper(s)), nil
}

// RGB splits the color into its components.
func (c Color) RGB() (r, g, b uint8) {
	v, _ := strconv.ParseUint(string(c), 16, 32)
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// Direction selects which side of a threshold a value must fall on.
// Boundaries are inclusive either way.
type Direction string

const (
	// DirectionAtLeast matches the first threshold with value >= threshold.
	// Thresholds must be listed in strictly descending order.
	DirectionAtLeast Direction = "at-least"
	// DirectionAtMost matches the first threshold with value <= threshold.
	// Thresholds must be listed in strictly ascending order.
	DirectionAtMost Direction = "at-most"
)

// Threshold pairs a boundary value with the color it awards.
type Threshold struct {
	Value float64
	Color Color
}

// InvalidRuleError reports a non-numeric cell under a column matched by
// a formatting rule.
type InvalidRuleError struct {
	Column string
	Value  string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("formatting rule on column %q: value %q is not numeric", e.Column, e.Value)
}

// Rules is the conditional formatting configuration. Only text drawn in
// BaseColor is eligible for recoloring; author-chosen colors are never
// overridden.
type Rules struct {
	ScorePrefix string // columns with this (case-sensitive) prefix are score-like
	BaseColor   Color
	Direction   Direction
	Thresholds  []Threshold // evaluated in order, first match wins
}

// Validate checks the rule set once at load time: per-cell evaluation
// assumes a well-ordered threshold list.
func (r Rules) Validate() error {
	if r.ScorePrefix == "" {
		return fmt.Errorf("score column prefix must not be empty")
	}
	switch r.Direction {
	case DirectionAtLeast, DirectionAtMost:
	default:
		return fmt.Errorf("unknown threshold direction %q", r.Direction)
	}
	if r.BaseColor == Unstyled {
		return fmt.Errorf("base color must be set")
	}
	for i, th := range r.Thresholds {
		if th.Color == Unstyled {
			return fmt.Errorf("threshold %v has no color", th.Value)
		}
		if i == 0 {
			continue
		}
		prev := r.Thresholds[i-1].Value
		if r.Direction == DirectionAtLeast && th.Value >= prev {
			return fmt.Errorf("thresholds must be strictly descending, got %v after %v", th.Value, prev)
		}
		if r.Direction == DirectionAtMost && th.Value <= prev {
			return fmt.Errorf("thresholds must be strictly ascending, got %v after %v", th.Value, prev)
		}
	}
	return nil
}

// Matches reports whether a column is score-like under these rules.
func (r Rules) Matches(column string) bool {
	return r.ScorePrefix != "" && strings.HasPrefix(column, r.ScorePrefix)
}

// Decide returns the color for one cell, or Unstyled when the cell is
// not eligible: text not drawn in the base color, columns outside the
// score predicate, and values satisfying no threshold all stay
// unstyled. A non-numeric value under a matched rule is an error.
func (r Rules) Decide(column string, v table.Value, base Color) (Color, error) {
	if base != r.BaseColor {
		return Unstyled, nil
	}
	if !r.Matches(column) {
		return Unstyled, nil
	}
	if !v.IsNumber() {
		return Unstyled, &InvalidRuleError{Column: column, Value: v.String()}
	}
	for _, th := range r.Thresholds {
		if r.Direction == DirectionAtMost {
			if v.Float() <= th.Value {
				return th.Color, nil
			}
			continue
		}
		if v.Float() >= th.Value {
			return th.Color, nil
		}
	}
	return Unstyled, nil
}
