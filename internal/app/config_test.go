package app

import "testing"

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" http://a.example ,, http://b.example")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("splitCSV = %v", got)
	}
	if out := splitCSV(""); len(out) != 0 {
		t.Fatalf("empty input should yield nothing, got %v", out)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "25")
	if v := getEnvInt("TEST_INT", 5); v != 25 {
		t.Fatalf("got %d", v)
	}
	t.Setenv("TEST_INT", "junk")
	if v := getEnvInt("TEST_INT", 5); v != 5 {
		t.Fatalf("fallback not used, got %d", v)
	}
	if v := getEnvInt("TEST_INT_MISSING", 7); v != 7 {
		t.Fatalf("missing var fallback, got %d", v)
	}
}
