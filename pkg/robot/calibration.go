package robot

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/goliath-arm/goliath/pkg/animation"
)

// ServoCalibration maps one axis between engineering units (degrees for the
// rotational axes, meters for the gripper sliders) and raw servo ticks.
type ServoCalibration struct {
	ID      int     `json:"id"`
	UnitMin float64 `json:"unit_min"` // engineering value at RawMin
	UnitMax float64 `json:"unit_max"` // engineering value at RawMax
	RawMin  int     `json:"raw_min"`
	RawMax  int     `json:"raw_max"`
}

// Calibration holds calibration data for all axes, keyed by joint name.
type Calibration map[animation.JointName]ServoCalibration

// LoadCalibration loads calibration data from a JSON file.
func LoadCalibration(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	var raw map[string]ServoCalibration
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse calibration JSON: %w", err)
	}

	cal := make(Calibration, len(raw))
	for name, sc := range raw {
		cal[animation.JointName(name)] = sc
	}

	return cal, nil
}

// ToRaw converts an engineering value to a raw servo position, clamped to
// the calibrated range.
func (c ServoCalibration) ToRaw(unit float64) int {
	unitRange := c.UnitMax - c.UnitMin
	if unitRange == 0 {
		return c.RawMin
	}
	t := (unit - c.UnitMin) / unitRange
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return c.RawMin + int(math.Round(t*float64(c.RawMax-c.RawMin)))
}

// ToUnit converts a raw servo position to an engineering value.
func (c ServoCalibration) ToUnit(raw int) float64 {
	rawRange := float64(c.RawMax - c.RawMin)
	if rawRange == 0 {
		return c.UnitMin
	}
	t := float64(raw-c.RawMin) / rawRange
	return c.UnitMin + t*(c.UnitMax-c.UnitMin)
}

// ServoIDs returns the servo IDs for all calibrated axes, in axis order.
func (c Calibration) ServoIDs() []int {
	ids := make([]int, 0, len(c))
	// Use AllAxes() to ensure consistent ordering
	for _, name := range AllAxes() {
		if sc, ok := c[name]; ok {
			ids = append(ids, sc.ID)
		}
	}
	return ids
}

// ByID returns the axis name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (animation.JointName, ServoCalibration, bool) {
	for name, sc := range c {
		if sc.ID == id {
			return name, sc, true
		}
	}
	return "", ServoCalibration{}, false
}
