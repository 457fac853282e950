package model

import (
	"fmt"
	"math"
)

// JSONFloat is a float64 that serializes NaN and Inf as JSON null, so
// payloads with undefined KPIs stay valid JSON.
type JSONFloat float64

// MarshalJSON renders NaN and Inf as null.
func (v JSONFloat) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", f)), nil
}

// UnmarshalJSON reads null back as NaN.
func (v *JSONFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = JSONFloat(math.NaN())
		return nil
	}
	var f float64
	if _, err := fmt.Sscanf(string(data), "%g", &f); err != nil {
		return err
	}
	*v = JSONFloat(f)
	return nil
}
