package seqcode

import "testing"

func TestFormat(t *testing.T) {
	if got := Format("Q", 25, 8); got != "Q250008" {
		t.Fatalf("expected Q250008, got %s", got)
	}
	if got := Format("BR", 25, 1); got != "BR250001" {
		t.Fatalf("expected BR250001, got %s", got)
	}
	if got := Format("Q", 25, 12345); got != "Q2512345" {
		t.Fatalf("sequence overflow should widen: got %s", got)
	}
	if got := Format("Q", 7, 1); got != "Q070001" {
		t.Fatalf("year digits must be zero padded: got %s", got)
	}
}

func TestParse(t *testing.T) {
	prefix, year, seq, err := Parse("Q250008")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if prefix != "Q" || year != 25 || seq != 8 {
		t.Fatalf("unexpected components: %s %d %d", prefix, year, seq)
	}

	prefix, year, seq, err = Parse("BR269999")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if prefix != "BR" || year != 26 || seq != 9999 {
		t.Fatalf("unexpected components: %s %d %d", prefix, year, seq)
	}

	for _, bad := range []string{"", "250008", "Q25", "Q25000X", "Q-250008"} {
		if _, _, _, err := Parse(bad); err == nil {
			t.Fatalf("expected parse error for %q", bad)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for seq := 1; seq <= 15; seq++ {
		code := Format("F", 25, seq)
		prefix, year, got, err := Parse(code)
		if err != nil {
			t.Fatalf("parse %s: %v", code, err)
		}
		if prefix != "F" || year != 25 || got != seq {
			t.Fatalf("round trip mismatch for %s", code)
		}
	}
}

func TestYearDigits(t *testing.T) {
	if got := YearDigits(2026); got != 26 {
		t.Fatalf("expected 26, got %d", got)
	}
	if got := YearDigits(2100); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestValidPrefix(t *testing.T) {
	for _, ok := range []string{"Q", "BR", "F"} {
		if !ValidPrefix(ok) {
			t.Fatalf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "q", "B2", "Q-"} {
		if ValidPrefix(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
