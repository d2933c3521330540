package gazetteer

import "testing"

func TestResolve_EveryKnownName(t *testing.T) {
	g := New()
	names := g.KnownNames()
	if len(names) < 100 {
		t.Fatalf("expected at least 100 entries, got %d", len(names))
	}
	for _, n := range names {
		e, ok := g.Resolve(n)
		if !ok {
			t.Fatalf("Resolve(%q) failed for a known name", n)
		}
		if e.Bounds.MinLat >= e.Bounds.MaxLat {
			t.Fatalf("%q: degenerate latitude bounds %v", n, e.Bounds)
		}
		if !e.Bounds.LatOnly && e.Bounds.MinLon >= e.Bounds.MaxLon {
			t.Fatalf("%q: degenerate longitude bounds %v", n, e.Bounds)
		}
		if e.CentroidLat < e.Bounds.MinLat || e.CentroidLat > e.Bounds.MaxLat {
			t.Fatalf("%q: centroid lat %.2f outside bounds", n, e.CentroidLat)
		}
		if !e.Bounds.LatOnly && (e.CentroidLon < e.Bounds.MinLon || e.CentroidLon > e.Bounds.MaxLon) {
			t.Fatalf("%q: centroid lon %.2f outside bounds", n, e.CentroidLon)
		}
	}
}

func TestResolve_CaseInsensitiveExactOnly(t *testing.T) {
	g := New()

	if _, ok := g.Resolve("Bay of Bengal"); !ok {
		t.Fatalf("expected case-insensitive match for Bay of Bengal")
	}
	if _, ok := g.Resolve("  chennai  "); !ok {
		t.Fatalf("expected trimmed match for chennai")
	}

	// no fuzzy matching: near-misses are rejected
	for _, bad := range []string{"atlantis", "chenai", "bay of bengals", ""} {
		if _, ok := g.Resolve(bad); ok {
			t.Fatalf("Resolve(%q) should not match", bad)
		}
	}
}

func TestResolve_CityCentroidOverridesMidpoint(t *testing.T) {
	g := New()
	e, ok := g.Resolve("chennai")
	if !ok {
		t.Fatalf("chennai missing")
	}
	if e.CentroidLat != 13.08 || e.CentroidLon != 80.27 {
		t.Fatalf("chennai centroid got (%.2f, %.2f), want (13.08, 80.27)", e.CentroidLat, e.CentroidLon)
	}
}

func TestKnownNames_SortedAndCopied(t *testing.T) {
	g := New()
	a := g.KnownNames()
	for i := 1; i < len(a); i++ {
		if a[i-1] >= a[i] {
			t.Fatalf("names not strictly sorted at %d: %q >= %q", i, a[i-1], a[i])
		}
	}
	a[0] = "mutated"
	b := g.KnownNames()
	if b[0] == "mutated" {
		t.Fatalf("KnownNames must return a copy")
	}
}

func TestBandEntries_LatitudeOnly(t *testing.T) {
	g := New()
	for _, n := range []string{"equator", "tropics", "southern ocean"} {
		e, ok := g.Resolve(n)
		if !ok {
			t.Fatalf("%q missing", n)
		}
		if !e.Bounds.LatOnly {
			t.Fatalf("%q should be a latitude-only band", n)
		}
	}
}
