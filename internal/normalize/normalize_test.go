package normalize

import "testing"

func TestDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"19800101", "1980-01-01"},
		{"198001", "1980-01"},
		{"1980", "1980"},
		{"1980-01-01", "1980-01-01"},
		{"1980-01", "1980-01"},
		{"1980/01/15", "1980-01-15"},
		{"1980/1/5", "1980-01-05"},
		{"01/15/1980", "1980-01-15"},
		{"15/01/1980", "1980-01-15"}, // day first: 15 cannot be a month
		{"2023-06-15T10:30:00", "2023-06-15"},
		{"2023-06-15 10:30", "2023-06-15"},
		{"", ""},
		{"not a date", ""},
		{"19801315", ""}, // month 13
		{"19800132", ""}, // day 32
		{"123", ""},
	}
	for _, tc := range cases {
		if got := Date(tc.raw); got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDateIdempotent(t *testing.T) {
	inputs := []string{"19800101", "1980/01/15", "01/15/1980", "1980-06", "1980", "garbage", ""}
	for _, raw := range inputs {
		once := Date(raw)
		twice := Date(once)
		if once != twice {
			t.Errorf("Date not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestNumeric(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"120", 120, true},
		{"98.6", 98.6, true},
		{"1,234.5", 1234.5, true},
		{" 42 ", 42, true},
		{"-3.2", -3.2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, tc := range cases {
		got, ok := Numeric(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Numeric(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFlag(t *testing.T) {
	yes := []string{"Y", "y", "Yes", "1", "TRUE", "t"}
	for _, raw := range yes {
		if got := Flag(raw); got != "Y" {
			t.Errorf("Flag(%q) = %q, want Y", raw, got)
		}
	}
	no := []string{"N", "no", "0", "false", "F"}
	for _, raw := range no {
		if got := Flag(raw); got != "N" {
			t.Errorf("Flag(%q) = %q, want N", raw, got)
		}
	}
	unknown := []string{"", "maybe", "2", "YEP"}
	for _, raw := range unknown {
		if got := Flag(raw); got != "" {
			t.Errorf("Flag(%q) = %q, want empty", raw, got)
		}
	}
}

func TestText(t *testing.T) {
	if got := Text("  mild   headache "); got != "MILD HEADACHE" {
		t.Errorf("Text collapsed to %q", got)
	}
	if got := Text(""); got != "" {
		t.Errorf("Text(\"\") = %q", got)
	}
}
