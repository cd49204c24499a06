package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %s", got)
	}
	if got := ByName("neon").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(neon) = %s, want %s", got, FlexokiDark.Name)
	}
}

func TestNamesMatchKnown(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Known(n) {
			t.Fatalf("Known(%q) = false", n)
		}
	}
	if Known("") {
		t.Fatal("Known(\"\") = true")
	}
}
