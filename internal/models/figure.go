package models

import (
	"encoding/json"
	"math"
)

// Figure is a numeric filing figure that is either a finite value or
// explicitly unavailable. Absence is a distinct state from zero: a company
// can legitimately report zero debt, while a missing figure means the filing
// (or our extraction of it) did not provide one. A Figure never holds
// NaN or an infinity.
type Figure struct {
	value float64
	ok    bool
}

// FigureOf returns an available Figure holding v. Non-finite inputs are
// mapped to the unavailable state rather than stored.
func FigureOf(v float64) Figure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Figure{}
	}
	return Figure{value: v, ok: true}
}

// NoFigure returns the unavailable marker.
func NoFigure() Figure {
	return Figure{}
}

// FigureFromPtr converts a nullable raw figure into a Figure.
// nil becomes unavailable.
func FigureFromPtr(v *float64) Figure {
	if v == nil {
		return Figure{}
	}
	return FigureOf(*v)
}

// Value returns the held value and whether the figure is available.
func (f Figure) Value() (float64, bool) {
	return f.value, f.ok
}

// Available reports whether the figure holds a value.
func (f Figure) Available() bool {
	return f.ok
}

// MarshalJSON encodes an available figure as a JSON number and an
// unavailable one as null, keeping null distinct from 0 on the wire.
func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON decodes null as unavailable and any number as a value.
func (f *Figure) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Figure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FigureOf(v)
	return nil
}

// Ratio is a derived quantity that is either a finite value or undefined.
// A ratio is undefined when its denominator was zero or any operand was
// unavailable; this is an expected, frequent condition in filing data and
// is not an error.
type Ratio struct {
	value float64
	ok    bool
}

// RatioOf returns a defined Ratio holding v. Non-finite inputs become
// undefined so division artifacts can never leak to callers.
func RatioOf(v float64) Ratio {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{value: v, ok: true}
}

// UndefinedRatio returns the undefined marker.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Value returns the held value and whether the ratio is defined.
func (r Ratio) Value() (float64, bool) {
	return r.value, r.ok
}

// Defined reports whether the ratio holds a value.
func (r Ratio) Defined() bool {
	return r.ok
}

// MarshalJSON encodes a defined ratio as a JSON number and an undefined one
// as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as undefined and any number as a value.
func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = RatioOf(v)
	return nil
}
