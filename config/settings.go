// Package config loads the settings file that drives conditional
// formatting and pipeline behavior.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aerissecure/deckgen/format"
)

// Settings mirrors settings.yaml. Zero values fall back to Default().
type Settings struct {
	// ScoreColumnPrefix marks the columns whose substituted values get
	// conditional coloring, by case-sensitive name prefix.
	ScoreColumnPrefix string `yaml:"score_column_prefix"`
	// BaseColor is the only text color eligible for recoloring.
	BaseColor string `yaml:"base_color"`
	// Direction is "at-least" (thresholds descending) or "at-most"
	// (thresholds ascending).
	Direction  string          `yaml:"direction"`
	Thresholds []ThresholdSpec `yaml:"thresholds"`

	// RoundDecimals pre-rounds the two sorting key columns before
	// ranking, for callers who want fuzzy tie behavior. Nil leaves the
	// keys exact.
	RoundDecimals *int `yaml:"round_decimals"`
	// EmptyAsZero coerces empty sorting cells to 0 instead of failing.
	EmptyAsZero bool `yaml:"empty_as_zero"`
	// Workers > 1 renders slides concurrently.
	Workers int `yaml:"workers"`
	// JudgeColumns, when set, derives the avg/std sorting keys from
	// these raw score columns before ranking.
	JudgeColumns []string `yaml:"judge_columns"`

	AvatarMode bool `yaml:"avatar_mode"`
	AvatarSize int  `yaml:"avatar_size"`
}

// ThresholdSpec is one (threshold, color) pair from the settings file,
// evaluated in file order.
type ThresholdSpec struct {
	Threshold float64 `yaml:"threshold"`
	Color     string  `yaml:"color"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		ScoreColumnPrefix: "avg",
		BaseColor:         "FFFFFF",
		Direction:         string(format.DirectionAtLeast),
		Workers:           1,
		AvatarSize:        256,
	}
}

// Load reads a settings file, merging its values over the defaults and
// validating the resulting rule set. Validation happens once here, not
// per cell.
func Load(path string) (Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	if _, err := s.Rules(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Rules converts the settings into the formatting rule set, validating
// colors and threshold ordering.
func (s Settings) Rules() (format.Rules, error) {
	base, err := format.ParseColor(s.BaseColor)
	if err != nil {
		return format.Rules{}, fmt.Errorf("base color: %w", err)
	}
	r := format.Rules{
		ScorePrefix: s.ScoreColumnPrefix,
		BaseColor:   base,
		Direction:   format.Direction(s.Direction),
	}
	for _, th := range s.Thresholds {
		c, err := format.ParseColor(th.Color)
		if err != nil {
			return format.Rules{}, fmt.Errorf("threshold %v: %w", th.Threshold, err)
		}
		r.Thresholds = append(r.Thresholds, format.Threshold{Value: th.Threshold, Color: c})
	}
	if err := r.Validate(); err != nil {
		return format.Rules{}, err
	}
	return r, nil
}
