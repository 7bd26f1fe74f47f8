package robot

import (
	"math"
	"testing"

	"github.com/goliath-arm/goliath/pkg/animation"
)

func TestServoCalibration_ToRaw(t *testing.T) {
	cal := ServoCalibration{
		UnitMin: -90,
		UnitMax: 90,
		RawMin:  1000,
		RawMax:  3000,
	}

	tests := []struct {
		unit     float64
		expected int
	}{
		{-90, 1000}, // min -> raw min
		{90, 3000},  // max -> raw max
		{0, 2000},   // mid -> mid
		{-45, 1500}, // quarter
		{45, 2500},  // three-quarter
		{-120, 1000}, // below range clamps
		{120, 3000},  // above range clamps
	}

	for _, tt := range tests {
		got := cal.ToRaw(tt.unit)
		if got != tt.expected {
			t.Errorf("ToRaw(%f) = %d, want %d", tt.unit, got, tt.expected)
		}
	}
}

func TestServoCalibration_ToUnit(t *testing.T) {
	cal := ServoCalibration{
		UnitMin: -90,
		UnitMax: 90,
		RawMin:  1000,
		RawMax:  3000,
	}

	tests := []struct {
		raw      int
		expected float64
	}{
		{1000, -90},
		{3000, 90},
		{2000, 0},
		{1500, -45},
		{2500, 45},
	}

	for _, tt := range tests {
		got := cal.ToUnit(tt.raw)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("ToUnit(%d) = %f, want %f", tt.raw, got, tt.expected)
		}
	}
}

func TestServoCalibration_SliderUnits(t *testing.T) {
	// The gripper sliders run in meters over a tiny range.
	cal := ServoCalibration{
		UnitMin: -0.022,
		UnitMax: 0.022,
		RawMin:  512,
		RawMax:  3584,
	}

	// Round-trip: unit -> raw -> unit within one tick of resolution
	tickSize := (cal.UnitMax - cal.UnitMin) / float64(cal.RawMax-cal.RawMin)
	for unit := cal.UnitMin; unit <= cal.UnitMax; unit += 0.002 {
		raw := cal.ToRaw(unit)
		back := cal.ToUnit(raw)
		if math.Abs(back-unit) > tickSize {
			t.Errorf("Round-trip failed: %f -> %d -> %f", unit, raw, back)
		}
	}
}

func TestServoCalibration_DegenerateRange(t *testing.T) {
	cal := ServoCalibration{UnitMin: 5, UnitMax: 5, RawMin: 100, RawMax: 100}

	if got := cal.ToRaw(42); got != 100 {
		t.Errorf("ToRaw on degenerate range = %d, want 100", got)
	}
	if got := cal.ToUnit(42); got != 5 {
		t.Errorf("ToUnit on degenerate range = %f, want 5", got)
	}
}

func TestCalibration_ServoIDs(t *testing.T) {
	cal := Calibration{
		animation.Joint1:      ServoCalibration{ID: 1},
		animation.Joint2:      ServoCalibration{ID: 2},
		animation.Joint3:      ServoCalibration{ID: 3},
		animation.Joint4:      ServoCalibration{ID: 4},
		animation.Joint5:      ServoCalibration{ID: 5},
		animation.Joint6:      ServoCalibration{ID: 6},
		animation.Joint7:      ServoCalibration{ID: 7},
		animation.SliderLeft:  ServoCalibration{ID: 8},
		animation.SliderRight: ServoCalibration{ID: 9},
	}

	ids := cal.ServoIDs()
	expected := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	if len(ids) != len(expected) {
		t.Fatalf("ServoIDs returned %d IDs, want %d", len(ids), len(expected))
	}

	for i, id := range ids {
		if id != expected[i] {
			t.Errorf("ServoIDs()[%d] = %d, want %d", i, id, expected[i])
		}
	}
}

func TestCalibration_ByID(t *testing.T) {
	cal := Calibration{
		animation.Joint1:     ServoCalibration{ID: 1, RawMin: 100, RawMax: 200},
		animation.SliderLeft: ServoCalibration{ID: 8, RawMin: 300, RawMax: 400},
	}

	// Test finding existing ID
	name, sc, ok := cal.ByID(1)
	if !ok {
		t.Fatal("ByID(1) returned false")
	}
	if name != animation.Joint1 {
		t.Errorf("ByID(1) returned name %s, want joint_1", name)
	}
	if sc.RawMin != 100 {
		t.Errorf("ByID(1) returned wrong calibration: %+v", sc)
	}

	// Test non-existing ID
	_, _, ok = cal.ByID(99)
	if ok {
		t.Error("ByID(99) should return false")
	}
}
