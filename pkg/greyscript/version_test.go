package greyscript

import "testing"

func TestCompareVersionsNumeric(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0.8.0", "0.8.0", 0},
		{"0.9.0", "0.8.0", 1},
		{"0.7.5", "0.8.0", -1},
		// The lexicographic ordering bug: "0.10.0" < "0.8.0" as strings.
		{"0.10.0", "0.8.0", 1},
		{"0.10.0", "0.9.0", 1},
	}
	for _, c := range cases {
		if got := CompareVersions(c.a, c.b); got != c.want {
			t.Fatalf("CompareVersions(%q, %q)=%d want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareVersionsFallback(t *testing.T) {
	// Non-version strings stay totally ordered.
	if got := CompareVersions("beta", "alpha"); got != 1 {
		t.Fatalf("got %d", got)
	}
}

func TestVersionAtLeast(t *testing.T) {
	if !VersionAtLeast("0.10.0", "0.8.0") {
		t.Fatal("0.10.0 should be at least 0.8.0")
	}
	if VersionAtLeast("0.7.0", "0.8.0") {
		t.Fatal("0.7.0 is below 0.8.0")
	}
	if !VersionAtLeast("0.8.0", "0.8.0") {
		t.Fatal("equal versions satisfy at-least")
	}
}
