package config

// DefaultProfile returns the stock TEC fan profile. The plant is the hot
// side of a thermoelectric cooler: duty tracks the heat load, the fan
// only spins up from Off when temperature or load demands it, and an
// already-running fan is kept out of its stall region. Temperatures are
// degrees C, rates degrees C per second, power watts, duty percent.
func DefaultProfile() Profile {
	return Profile{
		Variables: []VariableConfig{
			{
				Name:   "temperature",
				Source: SourceTemperature,
				Terms: []TermConfig{
					{Label: "Low", Shape: "trapezoid", Params: []float64{-20, -20, 18, 25}},
					{Label: "Medium", Shape: "triangle", Params: []float64{18, 23, 35}},
					{Label: "High", Shape: "trapezoid", Params: []float64{23, 35, 100, 100}},
				},
			},
			{
				Name:   "temp_change",
				Source: SourceTempRate,
				Terms: []TermConfig{
					{Label: "Dec", Shape: "trapezoid", Params: []float64{-20, -20, -2, 0}},
					{Label: "Stable", Shape: "triangle", Params: []float64{-2, 0, 2}},
					{Label: "Inc", Shape: "trapezoid", Params: []float64{0, 2, 20, 20}},
				},
			},
			{
				Name:   "tec_power",
				Source: SourcePower,
				Terms: []TermConfig{
					{Label: "Low", Shape: "trapezoid", Params: []float64{-5, -5, 3, 15}},
					{Label: "Medium", Shape: "triangle", Params: []float64{3, 10, 25}},
					{Label: "High", Shape: "trapezoid", Params: []float64{15, 25, 100, 100}},
				},
			},
			{
				Name:   "fan_state",
				Source: SourceFanDuty,
				Terms: []TermConfig{
					{Label: "Off", Shape: "rectangle", Params: []float64{0, 20}},
					{Label: "On", Shape: "rectangle", Params: []float64{20, 101}},
				},
			},
			{
				Name:   "fan_speed",
				Source: SourceOutput,
				Terms: []TermConfig{
					{Label: "Off", Shape: "rectangle", Params: []float64{-20, 20}},
					{Label: "Slow", Shape: "trapezoid", Params: []float64{20, 20, 40, 60}},
					{Label: "Medium", Shape: "trapezoid", Params: []float64{30, 60, 60, 65}},
					{Label: "Fast", Shape: "trapezoid", Params: []float64{60, 65, 100, 100}},
				},
			},
		},
		Rules: []RuleConfig{
			// A stopped fan spins up fast once temperature or load calls
			// for it at all.
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "Off"}},
					{Any: []Node{
						{Is: []string{"temperature", "Medium"}},
						{Is: []string{"temperature", "High"}},
						{Is: []string{"tec_power", "High"}},
					}},
				}},
				Then: map[string]string{"fan_speed": "Fast"},
			},
			// A stopped fan stays stopped while the plant is cool and calm.
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "Off"}},
					{Is: []string{"temperature", "Low"}},
					{Any: []Node{
						{Is: []string{"temp_change", "Stable"}},
						{Is: []string{"temp_change", "Dec"}},
					}},
				}},
				Then: map[string]string{"fan_speed": "Off"},
			},
			// A running fan winds down once the load is light and the
			// temperature is no longer climbing.
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"tec_power", "Low"}},
					{Any: []Node{
						{Is: []string{"temp_change", "Stable"}},
						{Is: []string{"temp_change", "Dec"}},
					}},
				}},
				Then: map[string]string{"fan_speed": "Off"},
			},
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"temperature", "Medium"}},
					{Not: []string{"tec_power", "High"}},
				}},
				Then: map[string]string{"fan_speed": "Medium"},
			},
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"temperature", "High"}},
					{Any: []Node{
						{Is: []string{"tec_power", "Medium"}},
						{Is: []string{"tec_power", "Low"}},
					}},
				}},
				Then: map[string]string{"fan_speed": "Fast"},
			},
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"tec_power", "Low"}},
					{Is: []string{"temperature", "Low"}},
				}},
				Then: map[string]string{"fan_speed": "Off"},
			},
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"tec_power", "Medium"}},
				}},
				Then: map[string]string{"fan_speed": "Medium"},
			},
			{
				If: Node{All: []Node{
					{Is: []string{"fan_state", "On"}},
					{Is: []string{"tec_power", "High"}},
				}},
				Then: map[string]string{"fan_speed": "Fast"},
			},
		},
		// Centroid averaging keeps the raw speed away from 0 and 100, so
		// the usable band is stretched onto real duty. At or below 20 the
		// fan would stall anyway and is switched off.
		Actuator: ActuatorConfig{
			Threshold: 20,
			In:        []float64{10, 80},
			Out:       []float64{30, 100},
		},
	}
}
