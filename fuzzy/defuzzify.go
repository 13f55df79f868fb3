package fuzzy

// Centroid returns the crisp representative point of a membership
// function. The trapezoid case averages the four corner parameters
// instead of integrating the area, which lands asymmetric trapezoids
// slightly toward their longer slope. Degenerate triangles collapse to
// their peak, and a rectangle yields its midpoint.
func Centroid(mf MembershipFunction) float64 {
	switch mf.Shape {
	case Triangular:
		if mf.A == mf.B || mf.B == mf.C {
			return mf.B
		}
		return (mf.A + mf.B + mf.C) / 3.0
	case Trapezoidal:
		if mf.A == mf.B && mf.C == mf.D {
			return (mf.B + mf.C) / 2.0
		}
		return (mf.A + mf.B + mf.C + mf.D) / 4.0
	case Rectangular:
		return (mf.A + mf.B) / 2.0
	}
	panic("fuzzy: unknown membership shape")
}

// Defuzzify reduces the set to one crisp value: the degree-weighted
// mean of the label centroids. Labels with zero degree contribute
// nothing, and an all-zero vector carries no information at all, so
// the result is 0.
func (s *Set) Defuzzify() float64 {
	var weighted, total float64
	for i, d := range s.degrees {
		if d == 0.0 {
			continue
		}
		weighted += Centroid(s.funcs[i]) * d
		total += d
	}
	if total == 0.0 {
		return 0.0
	}
	return weighted / total
}
