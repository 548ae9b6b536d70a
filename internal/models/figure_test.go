package models

import (
	"encoding/json"
	"math"
	"testing"
)

// TestFigureRoundTrip tests the one bit-exact serialization contract: an
// unavailable figure must survive a JSON round trip as null, distinct from
// a reported zero
func TestFigureRoundTrip(t *testing.T) {
	type payload struct {
		Zero    Figure `json:"zero"`
		Missing Figure `json:"missing"`
		Value   Figure `json:"value"`
	}

	in := payload{
		Zero:    FigureOf(0),
		Missing: NoFigure(),
		Value:   FigureOf(123.456),
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out payload
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if v, ok := out.Zero.Value(); !ok || v != 0 {
		t.Errorf("Expected zero to survive as available 0, got %v (ok=%v)", v, ok)
	}
	if out.Missing.Available() {
		t.Error("Expected missing figure to stay unavailable after round trip")
	}
	if v, ok := out.Value.Value(); !ok || v != 123.456 {
		t.Errorf("Expected 123.456, got %v (ok=%v)", v, ok)
	}
}

// TestFigureRejectsNonFinite tests that non-finite values cannot enter a
// Figure through the constructor
func TestFigureRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if FigureOf(v).Available() {
			t.Errorf("Expected FigureOf(%v) to be unavailable", v)
		}
		if RatioOf(v).Defined() {
			t.Errorf("Expected RatioOf(%v) to be undefined", v)
		}
	}
}

// TestRatioSetRoundTrip tests that a ratio set with a mix of defined and
// undefined entries round-trips through JSON without conflating states
func TestRatioSetRoundTrip(t *testing.T) {
	in := RatioSet{
		RatioReturnOnEquity: RatioOf(0.20),
		RatioDebtToEquity:   UndefinedRatio(),
		RatioProfitMargin:   RatioOf(0),
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out RatioSet
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if v, ok := out.Get(RatioReturnOnEquity).Value(); !ok || v != 0.20 {
		t.Errorf("Expected ROE 0.20, got %v (ok=%v)", v, ok)
	}
	if out.Get(RatioDebtToEquity).Defined() {
		t.Error("Expected undefined debt_to_equity to survive as undefined")
	}
	if v, ok := out.Get(RatioProfitMargin).Value(); !ok || v != 0 {
		t.Errorf("Expected margin 0 (defined), got %v (ok=%v)", v, ok)
	}
}
