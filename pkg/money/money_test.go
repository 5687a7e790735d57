package money

import "testing"

func TestPercentageRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		amount int64
		bps    int
		want   int64
	}{
		{50000, 500, 2500},
		{25000, 500, 1250},
		{18010, 500, 901},
		{10, 500, 1},
		{9, 500, 0},
		{0, 500, 0},
		{30000, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.amount, tc.bps); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.amount, tc.bps, got, tc.want)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:       "Rp 0",
		500:     "Rp 500",
		25000:   "Rp 25.000",
		1250000: "Rp 1.250.000",
		-15000:  "-Rp 15.000",
	}
	for amount, want := range cases {
		if got := FormatRupiah(amount); got != want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", amount, got, want)
		}
	}
}
