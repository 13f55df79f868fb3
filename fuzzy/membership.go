// Package fuzzy implements the evaluation pipeline of a fuzzy-logic
// controller: membership functions, linguistic variables, rule
// inference with Zadeh min/max combinators, and centroid
// defuzzification. The package is pure computation with no I/O and no
// goroutines, and the per-cycle path (Classify, Infer, Defuzzify)
// performs no heap allocation, so it is safe to run once per control
// tick at any rate the caller chooses.
package fuzzy

import "fmt"

// Shape identifies the geometric form of a membership function.
type Shape uint8

const (
	Triangular Shape = iota
	Trapezoidal
	Rectangular
)

func (s Shape) String() string {
	switch s {
	case Triangular:
		return "triangle"
	case Trapezoidal:
		return "trapezoid"
	case Rectangular:
		return "rectangle"
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// MembershipFunction maps a crisp value to a degree of truth in [0,1]
// for one linguistic label. Parameters are ordered a ≤ b ≤ c ≤ d;
// degenerate equalities are allowed and produce vertical edges. Values
// are immutable once built.
type MembershipFunction struct {
	Shape      Shape
	A, B, C, D float64
}

// Triangle builds a triangular membership function rising from a to a
// peak at b and falling to c. It panics on non-monotonic parameters:
// shape tables are fixed configuration, and a broken table is a
// programmer error caught at startup.
func Triangle(a, b, c float64) MembershipFunction {
	mf := MembershipFunction{Shape: Triangular, A: a, B: b, C: c}
	if err := mf.Validate(); err != nil {
		panic(err)
	}
	return mf
}

// Trapezoid builds a trapezoidal membership function with a plateau of
// full membership between b and c. It panics on non-monotonic
// parameters.
func Trapezoid(a, b, c, d float64) MembershipFunction {
	mf := MembershipFunction{Shape: Trapezoidal, A: a, B: b, C: c, D: d}
	if err := mf.Validate(); err != nil {
		panic(err)
	}
	return mf
}

// Rectangle builds a rectangular membership function with full
// membership on the right-open interval [a,b). It panics when a > b.
func Rectangle(a, b float64) MembershipFunction {
	mf := MembershipFunction{Shape: Rectangular, A: a, B: b}
	if err := mf.Validate(); err != nil {
		panic(err)
	}
	return mf
}

// Validate reports whether the shape tag is known and the parameters
// are monotonic. Load-time configuration goes through this instead of
// the panicking constructors.
func (mf MembershipFunction) Validate() error {
	switch mf.Shape {
	case Triangular:
		if !(mf.A <= mf.B && mf.B <= mf.C) {
			return fmt.Errorf("triangle parameters not ordered: a=%v b=%v c=%v", mf.A, mf.B, mf.C)
		}
	case Trapezoidal:
		if !(mf.A <= mf.B && mf.B <= mf.C && mf.C <= mf.D) {
			return fmt.Errorf("trapezoid parameters not ordered: a=%v b=%v c=%v d=%v", mf.A, mf.B, mf.C, mf.D)
		}
	case Rectangular:
		if !(mf.A <= mf.B) {
			return fmt.Errorf("rectangle parameters not ordered: a=%v b=%v", mf.A, mf.B)
		}
	default:
		return fmt.Errorf("unknown membership shape %d", mf.Shape)
	}
	return nil
}

// Evaluate returns the membership degree of x under mf. The result is
// always in [0,1]. Pure: no state, no side effects.
func Evaluate(x float64, mf MembershipFunction) float64 {
	switch mf.Shape {
	case Triangular:
		return triangular(x, mf.A, mf.B, mf.C)
	case Trapezoidal:
		return trapezoidal(x, mf.A, mf.B, mf.C, mf.D)
	case Rectangular:
		return rectangular(x, mf.A, mf.B)
	}
	// Unreachable through the validated constructors.
	panic("fuzzy: unknown membership shape")
}

func triangular(x, a, b, c float64) float64 {
	if x < a || x > c {
		return 0.0
	}
	if x <= b {
		if a == b {
			return 1.0 // vertical rising edge
		}
		return (x - a) / (b - a)
	}
	// b == c cannot reach here: x > b would imply x > c, handled above.
	return (c - x) / (c - b)
}

func trapezoidal(x, a, b, c, d float64) float64 {
	if x <= a || x >= d {
		return 0.0
	}
	if x <= b {
		// a == b cannot reach here: x <= b would imply x <= a.
		return (x - a) / (b - a)
	}
	if x >= c {
		// c == d cannot reach here: x >= c would imply x >= d.
		return (d - x) / (d - c)
	}
	return 1.0
}

func rectangular(x, a, b float64) float64 {
	if x < a || x >= b {
		return 0.0
	}
	return 1.0
}
