package dataset

import "testing"

func TestValueDiv(t *testing.T) {
	cases := []struct {
		name string
		num  Value
		den  Value
		want Value
	}{
		{"plain", Num(10), Num(4), Num(2.5)},
		{"zero denominator", Num(10), Num(0), Value{}},
		{"null denominator", Num(10), Value{}, Value{}},
		{"null numerator", Value{}, Num(4), Value{}},
		{"zero numerator", Num(0), Num(4), Num(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.num.Div(tc.den)
			if got != tc.want {
				t.Fatalf("Div = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRateChainOrder(t *testing.T) {
	views := Num(100)
	// Primary defined: fallback must not be consulted.
	if got := rateChain(ratio{Num(20), views}, ratio{Num(50), views}); got != Num(0.2) {
		t.Fatalf("primary should win, got %+v", got)
	}
	// Primary null: fall through.
	if got := rateChain(ratio{Value{}, views}, ratio{Num(50), views}); got != Num(0.5) {
		t.Fatalf("fallback should win, got %+v", got)
	}
	// Everything degrades: null, not zero.
	if got := rateChain(ratio{Value{}, views}, ratio{Num(50), Value{}}); got.Valid {
		t.Fatalf("exhausted chain should be null, got %+v", got)
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Value{}, ""},
		{Num(950), "950"},
		{Num(1234), "1.2k"},
		{Num(2_500_000), "2.5M"},
		{Num(999), "999"},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Errorf("FormatCount(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumberRoundTrips(t *testing.T) {
	for _, f := range []float64{0, 1, 12.5, 1000, 0.123} {
		s := FormatNumber(Num(f))
		if got := parseNumber(s); !got.Valid || got.F != f {
			t.Errorf("FormatNumber(%v) = %q did not round-trip: %+v", f, s, got)
		}
	}
	if FormatNumber(Value{}) != "" {
		t.Error("null should render empty")
	}
}
