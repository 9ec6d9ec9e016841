package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Scalar is a string-backed scalar that accepts JSON/YAML strings, numbers,
// or booleans and normalises them to their string form. Validation bounds and
// logic comparison values use it so numeric and date constraints share one
// wire shape.
type Scalar string

// UnmarshalJSON accepts any JSON scalar.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: scalar: %w", err)
	}
	*s = Scalar(Stringify(raw))
	return nil
}

// UnmarshalYAML accepts any YAML scalar.
func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("model: scalar: %w", err)
	}
	*s = Scalar(Stringify(raw))
	return nil
}

func (s Scalar) String() string { return string(s) }

// IsZero reports whether no value was configured.
func (s Scalar) IsZero() bool { return s == "" }

// Number parses the scalar as a finite float64.
func (s Scalar) Number() (float64, bool) {
	if s == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(string(s), 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// Date parses the scalar as a calendar date.
func (s Scalar) Date() (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, string(s)); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
