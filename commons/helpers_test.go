package commons

import "testing"

func TestGetInt(t *testing.T) {
	cases := map[string]int64{
		"12,345,678": 12345678,
		"71000":      71000,
		"-":          0,
		"":           0,
		" -1,200 ":   -1200,
	}
	for in, want := range cases {
		got, err := GetInt(in)
		if err != nil {
			t.Errorf("GetInt(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("GetInt(%q) = %d, want %d", in, got, want)
		}
	}

	if _, err := GetInt("12a"); err == nil {
		t.Error("GetInt should fail on garbage")
	}
}

func TestGetDouble(t *testing.T) {
	got, err := GetDouble("-29.97")
	if err != nil || got != -29.97 {
		t.Errorf("GetDouble(-29.97) = %v, %v", got, err)
	}
	got, err = GetDouble("1,029.50")
	if err != nil || got != 1029.5 {
		t.Errorf("GetDouble(1,029.50) = %v, %v", got, err)
	}
	if _, err := GetDouble("n/a"); err == nil {
		t.Error("GetDouble should fail on garbage")
	}
}
