package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Interval is an inclusive [Min, Max] range. Synthesized feature values are
// drawn uniformly from it, so Min == Max pins a feature to a constant.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the interval, bounds included.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Width returns Max - Min.
func (i Interval) Width() float64 {
	return i.Max - i.Min
}

// Validate returns an error when the bounds are inverted.
func (i Interval) Validate() error {
	if i.Min > i.Max {
		return fmt.Errorf("min %v exceeds max %v", i.Min, i.Max)
	}
	return nil
}

// UnmarshalYAML decodes the compact [min, max] sequence form used by
// overrides files.
func (i *Interval) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("interval must be a [min, max] sequence: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("interval must be a [min, max] sequence, got %d values", len(pair))
	}
	i.Min = pair[0]
	i.Max = pair[1]
	return nil
}

// MarshalYAML emits the same [min, max] sequence form accepted by
// UnmarshalYAML.
func (i Interval) MarshalYAML() (interface{}, error) {
	return []float64{i.Min, i.Max}, nil
}

func iv(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}
