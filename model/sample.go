package model

import "time"

// Sample is one cycle's worth of raw sensor readings, before any fuzzy
// processing. Collectors fill in the fields they own; a field left at zero
// with a note in Errors means the sensor could not be read this cycle.
type Sample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"` // hot-side temperature, degrees C
	TempRate    float64   `json:"temp_rate"`   // temperature slope, degrees C per second
	Power       float64   `json:"power"`       // TEC electrical power, watts
	FanDuty     float64   `json:"fan_duty"`    // fan duty currently applied, percent
	FanRPM      float64   `json:"fan_rpm"`     // tach reading, 0 when the fan has no tach line

	// Errors holds one message per collector that failed this cycle.
	// A partial sample still gets evaluated; stale or zero inputs
	// degrade the output rather than halting the loop.
	Errors []string `json:"errors,omitempty"`
}
