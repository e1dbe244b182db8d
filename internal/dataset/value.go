package dataset

import "math"

// Value is a nullable numeric cell. The zero Value is null, which keeps
// "absent or unparseable" distinct from an actual zero in the source data.
type Value struct {
	F     float64
	Valid bool
}

// Num wraps a concrete number.
func Num(f float64) Value {
	return Value{F: f, Valid: true}
}

// OrZero returns the number, or 0 when null.
func (v Value) OrZero() float64 {
	if !v.Valid {
		return 0
	}
	return v.F
}

// Div returns v/d, or null when either side is null or the denominator is
// zero. A zero denominator never yields Inf or an error.
func (v Value) Div(d Value) Value {
	if !v.Valid || !d.Valid || d.F == 0 {
		return Value{}
	}
	q := v.F / d.F
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return Value{}
	}
	return Num(q)
}

// ratio is one step of an ordered fallback chain: a numerator tried against
// a denominator. See rateChain.
type ratio struct {
	num, den Value
}

// rateChain evaluates ratios in priority order and returns the first defined
// quotient, or null when every step degrades. Making the fallback order
// explicit avoids the ambiguity of null-coalescing arithmetic.
func rateChain(steps ...ratio) Value {
	for _, s := range steps {
		if q := s.num.Div(s.den); q.Valid {
			return q
		}
	}
	return Value{}
}
