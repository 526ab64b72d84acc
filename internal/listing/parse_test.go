package listing

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"₹45,000", 45000},
		{"45/kg", 45},
		{" 1,250.50 ", 1250.5},
		{"$12", 12},
		{"100 per unit", 100},
		{"Rs. 2,500", 2500},
		{"0.5", 0.5},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountErrors(t *testing.T) {
	if _, err := ParseAmount(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty input: got %v, want ErrEmpty", err)
	}
	if _, err := ParseAmount("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank input: got %v, want ErrEmpty", err)
	}
	if _, err := ParseAmount("ask me"); !errors.Is(err, ErrNoNumericToken) {
		t.Errorf("non-numeric input: got %v, want ErrNoNumericToken", err)
	}
}

func TestParseBudgetSentinels(t *testing.T) {
	for _, in := range []string{"", "  ", "na", "NA", "n/a", "negotiable", "Negotiable"} {
		got, err := ParseBudget(in)
		if err != nil {
			t.Errorf("ParseBudget(%q): unexpected error %v", in, err)
			continue
		}
		if got != nil {
			t.Errorf("ParseBudget(%q) = %v, want nil", in, *got)
		}
	}
}

func TestParseBudgetValue(t *testing.T) {
	got, err := ParseBudget("₹1,00,000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 100000 {
		t.Fatalf("ParseBudget(\"₹1,00,000\") = %v, want 100000", got)
	}

	if _, err := ParseBudget("call us"); !errors.Is(err, ErrNoNumericToken) {
		t.Errorf("garbage budget: got %v, want ErrNoNumericToken", err)
	}
}
