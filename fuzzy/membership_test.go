package fuzzy

import "testing"

func TestEvaluateTriangular(t *testing.T) {
	tests := []struct {
		name string
		mf   MembershipFunction
		x    float64
		want float64
	}{
		{"below support", Triangle(0, 25, 50), -1, 0},
		{"at left foot", Triangle(0, 25, 50), 0, 0},
		{"rising midpoint", Triangle(0, 25, 50), 12.5, 0.5},
		{"at peak", Triangle(0, 25, 50), 25, 1},
		{"falling midpoint", Triangle(0, 25, 50), 37.5, 0.5},
		{"at right foot", Triangle(0, 25, 50), 50, 0},
		{"above support", Triangle(0, 25, 50), 51, 0},
		{"vertical left edge at peak", Triangle(10, 10, 20), 10, 1},
		{"vertical left edge below", Triangle(10, 10, 20), 9.999, 0},
		{"vertical left edge falling", Triangle(10, 10, 20), 15, 0.5},
		{"vertical right edge at peak", Triangle(0, 10, 10), 10, 1},
		{"vertical right edge above", Triangle(0, 10, 10), 10.001, 0},
		{"vertical right edge rising", Triangle(0, 10, 10), 5, 0.5},
		{"point shape at point", Triangle(10, 10, 10), 10, 1},
		{"point shape off point", Triangle(10, 10, 10), 10.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.x, tt.mf)
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.x, tt.mf, got, tt.want)
			}
		})
	}
}

func TestEvaluateTrapezoidal(t *testing.T) {
	tests := []struct {
		name string
		mf   MembershipFunction
		x    float64
		want float64
	}{
		{"below support", Trapezoid(0, 10, 20, 30), -5, 0},
		{"at left foot", Trapezoid(0, 10, 20, 30), 0, 0},
		{"rising midpoint", Trapezoid(0, 10, 20, 30), 5, 0.5},
		{"left shoulder", Trapezoid(0, 10, 20, 30), 10, 1},
		{"plateau", Trapezoid(0, 10, 20, 30), 15, 1},
		{"right shoulder", Trapezoid(0, 10, 20, 30), 20, 1},
		{"falling midpoint", Trapezoid(0, 10, 20, 30), 25, 0.5},
		{"at right foot", Trapezoid(0, 10, 20, 30), 30, 0},
		{"above support", Trapezoid(0, 10, 20, 30), 35, 0},
		{"vertical left edge at a", Trapezoid(0, 0, 15, 40), 0, 0},
		{"vertical left edge just above", Trapezoid(0, 0, 15, 40), 0.001, 1},
		{"vertical left edge falling", Trapezoid(0, 0, 15, 40), 20, 0.8},
		{"vertical right edge plateau", Trapezoid(60, 80, 100, 100), 99, 1},
		{"vertical right edge at d", Trapezoid(60, 80, 100, 100), 100, 0},
		{"vertical right edge rising", Trapezoid(60, 80, 100, 100), 70, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.x, tt.mf)
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.x, tt.mf, got, tt.want)
			}
		})
	}
}

func TestEvaluateRectangular(t *testing.T) {
	tests := []struct {
		name string
		mf   MembershipFunction
		x    float64
		want float64
	}{
		{"below a", Rectangle(20, 101), 19.999, 0},
		{"at a (closed)", Rectangle(20, 101), 20, 1},
		{"inside", Rectangle(20, 101), 60, 1},
		{"just below b", Rectangle(20, 101), 100.999, 1},
		{"at b (open)", Rectangle(20, 101), 101, 0},
		{"above b", Rectangle(20, 101), 150, 0},
		{"negative interval", Rectangle(-20, 20), 0, 1},
		{"negative interval right edge", Rectangle(-20, 20), 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.x, tt.mf)
			if got != tt.want {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.x, tt.mf, got, tt.want)
			}
		})
	}
}

func TestValidateRejectsUnorderedParams(t *testing.T) {
	tests := []struct {
		name string
		mf   MembershipFunction
	}{
		{"triangle b below a", MembershipFunction{Shape: Triangular, A: 5, B: 2, C: 10}},
		{"triangle c below b", MembershipFunction{Shape: Triangular, A: 0, B: 10, C: 5}},
		{"trapezoid d below c", MembershipFunction{Shape: Trapezoidal, A: 0, B: 10, C: 20, D: 15}},
		{"trapezoid b below a", MembershipFunction{Shape: Trapezoidal, A: 10, B: 0, C: 20, D: 30}},
		{"rectangle b below a", MembershipFunction{Shape: Rectangular, A: 20, B: 0}},
		{"unknown shape", MembershipFunction{Shape: Shape(9), A: 0, B: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mf.Validate(); err == nil {
				t.Errorf("Validate(%v) = nil, want error", tt.mf)
			}
		})
	}
}

func TestConstructorsPanicOnBrokenTables(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"triangle", func() { Triangle(5, 2, 10) }},
		{"trapezoid", func() { Trapezoid(0, 10, 5, 30) }},
		{"rectangle", func() { Rectangle(20, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic, got none")
				}
			}()
			tt.fn()
		})
	}
}
