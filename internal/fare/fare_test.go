package fare

import "testing"

func TestTaxiFareFromMeters(t *testing.T) {
	cases := []struct {
		meters int64
		want   int64
	}{
		{0, 95},
		{-10, 95},
		{1, 95},
		{1250, 95},
		{1251, 100},
		{1500, 100},
		{1501, 105},
		{1750, 105},
		{2000, 110},
	}
	for _, c := range cases {
		if got := TaxiFareFromMeters(c.meters); got != c.want {
			t.Errorf("TaxiFareFromMeters(%d) = %d, want %d", c.meters, got, c.want)
		}
	}
}

func TestTaxiFareMonotonic(t *testing.T) {
	prev := int64(0)
	for m := int64(0); m <= 20000; m += 50 {
		got := TaxiFareFromMeters(m)
		if got < 95 {
			t.Fatalf("fare below base at %d m: %d", m, got)
		}
		if got < prev {
			t.Fatalf("fare decreased at %d m: %d < %d", m, got, prev)
		}
		prev = got
	}
}

func TestReducedFareFromTaxiFare(t *testing.T) {
	cases := []struct {
		taxi int64
		want int64
	}{
		{95, 32},
		{100, 34},
		{105, 35},
		{3, 1},
		{0, 0},
	}
	for _, c := range cases {
		if got := ReducedFareFromTaxiFare(c.taxi); got != c.want {
			t.Errorf("ReducedFareFromTaxiFare(%d) = %d, want %d", c.taxi, got, c.want)
		}
	}
}
