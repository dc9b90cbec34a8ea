package commons

import "testing"

func TestHumanFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1.00K"},
		{1500, "1.50K"},
		{10000000, "10.00M"},
		{12345678, "12.35M"},
		{999999, "1000.00K"},
		{3.2e9, "3.20G"},
		{4e12, "4.00T"},
		{5e15, "5.00P"},
		{7e18, "7000.00P"},
		{-999, "-999.00"},
		{-1000, "-1.00K"},
		{-10000000, "-10.00M"},
	}
	for _, c := range cases {
		if got := HumanFormat(c.in); got != c.want {
			t.Errorf("HumanFormat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRoundRate(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{30, "30.0"},
		{29.9, "29.9"},
		{29.966, "29.97"},
		{29.01, "29.01"},
		{-3.456, "-3.46"},
	}
	for _, c := range cases {
		if got := RoundRate(c.in); got != c.want {
			t.Errorf("RoundRate(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
